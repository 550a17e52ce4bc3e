package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit         key.Binding
	SwitchPane   key.Binding
	Up           key.Binding
	Down         key.Binding
	Decrease     key.Binding
	Increase     key.Binding
	Toggle       key.Binding
	Edit         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Jump         key.Binding
	SearchColumn key.Binding
	Reload       key.Binding
	OpenHelp     key.Binding
	SaveToFile   key.Binding
	ExportPlot   key.Binding
	ExportTrack  key.Binding
	CopyData     key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	SwitchPane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch sidebar / data"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous control or row"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next control or row"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous value / scroll left"),
	),
	Increase: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next value / scroll right"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle checkbox"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit range / pick column"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("u", "pgup"),
		key.WithHelp("u/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("d", "pgdown"),
		key.WithHelp("d/pgdown", "page down"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to data row"),
	),
	SearchColumn: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "find column for focused axis"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "rescan directory and reload"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	SaveToFile: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save data slice as CSV"),
	),
	ExportPlot: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export plot as PNG"),
	),
	ExportTrack: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "export track as PNG"),
	),
	CopyData: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy data slice to clipboard"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit,
		k.SwitchPane,
		k.Up,
		k.Down,
		k.Decrease,
		k.Increase,
		k.Toggle,
		k.Edit,
		k.PageUp,
		k.PageDown,
		k.Jump,
		k.SearchColumn,
		k.Reload,
		k.SaveToFile,
		k.ExportPlot,
		k.ExportTrack,
		k.CopyData,
	}
}

// ShortHelp is the footer legend.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenHelp, k.SwitchPane, k.Toggle, k.Edit, k.SearchColumn, k.ExportPlot, k.Quit}
}
