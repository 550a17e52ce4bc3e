package dialogs

import (
	"fmt"
	"path/filepath"

	"github.com/andareed/dynonview/logging"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ExportKind says which chart an export writes.
type ExportKind int

const (
	ExportPlot ExportKind = iota
	ExportTrack
)

func (k ExportKind) String() string {
	if k == ExportTrack {
		return "track"
	}
	return "plot"
}

// --- Messages ---------------------------------------------------------------

type (
	ExportConfirmedMsg struct {
		Kind ExportKind
		Path string
	}
	ExportCanceledMsg struct{}
	ExportErrorMsg    struct{ Err error }
	ExportOKMsg       struct{ Path string }
)

type Export struct {
	kind    ExportKind
	input   textinput.Model
	visible bool
	lastDir string
}

func (d Export) Init() tea.Cmd { return textinput.Blink }

func NewExportDialog(kind ExportKind, defaultName, lastDir string) *Export {
	ti := textinput.New()
	ti.Placeholder = defaultName
	ti.Prompt = fmt.Sprintf("Export %s PNG as: ", kind)
	ti.CharLimit = 256
	ti.Width = 40
	if defaultName != "" {
		ti.SetValue(defaultName)
	}
	ti.Focus()
	return &Export{kind: kind, input: ti, visible: true, lastDir: lastDir}
}

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
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
			logging.Debugf("ExportDialog: confirmed %s export to %s", d.kind, path)
			kind := d.kind
			return d, func() tea.Msg { return ExportConfirmedMsg{Kind: kind, Path: path} }
		case "esc":
			logging.Debug("ExportDialog: canceled")
			return d, func() tea.Msg { return ExportCanceledMsg{} }
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d Export) View() string {
	if !d.visible {
		return ""
	}
	help := hintStyle.Render("enter to export • esc to cancel")
	return boxStyle().Render(fmt.Sprintf("%s\n\n%s", d.input.View(), help))
}

func (d *Export) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Export) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Export) Focus() tea.Cmd { return d.input.Focus() }
func (d *Export) Blur()          { d.input.Blur() }
func (d Export) IsVisible() bool { return d.visible }

// resolvePath falls back to the placeholder for blank input and puts bare
// file names under lastDir.
func resolvePath(val, placeholder, lastDir string) string {
	if val == "" {
		val = placeholder
	}
	if val == "" {
		return ""
	}
	if lastDir != "" && !filepath.IsAbs(val) && filepath.Dir(val) == "." {
		return filepath.Join(lastDir, filepath.Base(val))
	}
	return val
}
