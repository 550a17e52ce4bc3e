package dialogs

import (
	"path/filepath"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name, val, placeholder, dir, want string
	}{
		{"bare name goes under dir", "out.csv", "", "exports", filepath.Join("exports", "out.csv")},
		{"blank uses placeholder", "", "log-plot.png", "exports", filepath.Join("exports", "log-plot.png")},
		{"nested path kept", "sub/out.csv", "", "exports", "sub/out.csv"},
		{"absolute kept", "/tmp/out.csv", "", "exports", "/tmp/out.csv"},
		{"nothing at all", "", "", "exports", ""},
		{"no dir", "out.csv", "", "", "out.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePath(tt.val, tt.placeholder, tt.dir); got != tt.want {
				t.Fatalf("resolvePath(%q, %q, %q) = %q, want %q", tt.val, tt.placeholder, tt.dir, got, tt.want)
			}
		})
	}
}

func TestExportConfirmCarriesKind(t *testing.T) {
	d := NewExportDialog(ExportTrack, "flight-track.png", "")
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	msg, ok := cmd().(ExportConfirmedMsg)
	if !ok {
		t.Fatalf("got %T, want ExportConfirmedMsg", cmd())
	}
	if msg.Kind != ExportTrack || msg.Path != "flight-track.png" {
		t.Fatalf("got %+v", msg)
	}
}

func TestSaveEscCancels(t *testing.T) {
	d := NewSaveDialog("x.csv", "")
	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := cmd().(SaveCanceledMsg); !ok {
		t.Fatal("esc did not cancel")
	}
}

func TestHelpClosesOnEsc(t *testing.T) {
	d := NewHelpDialog([]key.Binding{key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))})
	if d.View() == "" {
		t.Fatal("help should render while visible")
	}
	d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if d.IsVisible() {
		t.Fatal("help still visible after esc")
	}
}
