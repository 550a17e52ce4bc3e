package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// assignSearchedColumn finds a column by name fragment and puts it on the
// axis selector that has focus in the sidebar.
func (m *model) assignSearchedColumn(query string) tea.Cmd {
	if query == "" {
		return nil
	}
	name, ok := m.sidebar.findColumn(query)
	if !ok {
		return m.startNotice(fmt.Sprintf("No column matches %q", query), "warn", noticeDuration)
	}
	if err := m.sidebar.assignColumn(name); err != nil {
		return m.startNotice(err.Error(), "warn", noticeDuration)
	}
	label, _ := m.sidebar.describe(m.sidebar.focused())
	m.recompute()
	return m.startNotice(fmt.Sprintf("%s set to %s", label, name), "success", noticeDuration)
}
