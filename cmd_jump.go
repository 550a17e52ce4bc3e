package main

import (
	"fmt"

	"github.com/andareed/dynonview/logging"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) rawRowCount() int {
	return m.result.raw.NumRows()
}

func (m *model) jumpToStart() {
	if m.rawRowCount() == 0 {
		return
	}
	m.cursor = 0
	m.ensureCursorVisible()
}

func (m *model) jumpToEnd() {
	if m.rawRowCount() == 0 {
		return
	}
	m.cursor = m.rawRowCount() - 1
	m.ensureCursorVisible()
}

// jumpToRow moves the cursor to row n of the data slice (0-based, as shown).
func (m *model) jumpToRow(n int) tea.Cmd {
	logging.Debugf("jumpToRow %d of %d", n, m.rawRowCount())
	if m.result.raw == nil {
		return m.startNotice("Enable \"Show data\" to jump to a row", "warn", noticeDuration)
	}
	if n < 0 || n >= m.rawRowCount() {
		return m.startNotice(fmt.Sprintf("Row %d out of bounds", n), "warn", noticeDuration)
	}
	m.ui.pane = paneMain
	m.cursor = n
	m.ensureCursorVisible()
	return nil
}

// moveCursor moves the data cursor, or scrolls the page when no data
// table is shown.
func (m *model) moveCursor(delta int) {
	if m.rawRowCount() == 0 {
		if delta < 0 {
			m.viewport.ScrollUp(-delta)
		} else {
			m.viewport.ScrollDown(delta)
		}
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, m.rawRowCount()-1)
	m.ensureCursorVisible()
}

func (m *model) pageSize() int {
	return max(1, m.viewport.Height-2)
}

// ensureCursorVisible scrolls the main viewport so the cursor row shows.
func (m *model) ensureCursorVisible() {
	if !m.ready || m.result.raw == nil {
		return
	}
	m.refreshView("cursor")
	line := m.rawTop + m.cursor
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}
