package dialogs

import (
	"fmt"

	"github.com/andareed/dynonview/logging"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---------------------------------------------------------------

type (
	SaveConfirmedMsg struct{ Path string }
	SaveCanceledMsg  struct{}
	SaveErrorMsg     struct{ Err error }
	SaveOKMsg        struct{ Path string }
)

// Save asks where to write the displayed data slice as CSV.
type Save struct {
	input   textinput.Model
	visible bool
	lastDir string
}

func (d Save) Init() tea.Cmd { return textinput.Blink }

func NewSaveDialog(defaultName, lastDir string) *Save {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.Prompt = "Save CSV as: "
	ti.CharLimit = 256
	ti.Width = 44
	if defaultName != "" {
		ti.SetValue(defaultName)
	}
	ti.Focus()
	return &Save{input: ti, visible: true, lastDir: lastDir}
}

func (d *Save) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			path := resolvePath(d.input.Value(), d.input.Placeholder, d.lastDir)
			if path == "" {
				return d, nil
			}
			logging.Debugf("SaveDialog: confirmed %s", path)
			return d, func() tea.Msg { return SaveConfirmedMsg{Path: path} }
		case "esc":
			logging.Debug("SaveDialog: canceled")
			return d, func() tea.Msg { return SaveCanceledMsg{} }
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d Save) View() string {
	if !d.visible {
		return ""
	}
	help := hintStyle.Render("enter to save • esc to cancel")
	return boxStyle().Render(fmt.Sprintf("%s\n\n%s", d.input.View(), help))
}

func (d *Save) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Save) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Save) Focus() tea.Cmd { return d.input.Focus() }
func (d *Save) Blur()          { d.input.Blur() }
func (d Save) IsVisible() bool { return d.visible }
