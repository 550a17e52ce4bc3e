package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andareed/dynonview/clipboard"
	"github.com/andareed/dynonview/dataset"
	"github.com/andareed/dynonview/dialogs"
	"github.com/andareed/dynonview/logging"
	"github.com/andareed/dynonview/plot"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	errNoData  = errors.New("enable \"Show data\" first")
	errNoPlot  = errors.New("enable \"Show plot\" first")
	errNoTrack = errors.New("no track to export")
)

// writeTableCSV writes t with a header row. Missing cells are written as
// they appeared in the source file.
func writeTableCSV(out io.Writer, t *dataset.Table) error {
	w := csv.NewWriter(out)
	if err := w.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for r := 0; r < t.NumRows(); r++ {
		if err := w.Write(t.Record(r)); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// tableTSV renders t as tab separated lines, header first.
func tableTSV(t *dataset.Table) string {
	var b strings.Builder
	header := renderedRow{cols: t.Names()}
	b.WriteString(header.String())
	for _, r := range rowsOf(t) {
		b.WriteByte('\n')
		b.WriteString(r.String())
	}
	return b.String()
}

func createFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (m *model) saveSlice(path string) error {
	if m.result.raw == nil {
		return errNoData
	}
	logging.Infof("saving %d rows to %s", m.result.raw.NumRows(), path)
	return createFile(path, func(w io.Writer) error { return writeTableCSV(w, m.result.raw) })
}

func (m *model) exportChart(kind dialogs.ExportKind, path string) error {
	switch kind {
	case dialogs.ExportTrack:
		if m.result.track == nil {
			return errNoTrack
		}
		return createFile(path, func(w io.Writer) error {
			return plot.RenderTrackPNG(w, m.result.track, m.cfg.Plot.Width, m.cfg.Plot.Height)
		})
	default:
		if m.result.figure == nil {
			return errNoPlot
		}
		fig := *m.result.figure
		fig.Width, fig.Height = m.cfg.Plot.Width, m.cfg.Plot.Height
		return createFile(path, func(w io.Writer) error { return plot.RenderPNG(w, &fig) })
	}
}

func (m *model) copySlice() tea.Cmd {
	if m.result.raw == nil {
		return m.startNotice("Enable \"Show data\" to copy rows", "warn", noticeDuration)
	}
	if err := clipboard.Copy(tableTSV(m.result.raw)); err != nil {
		return m.startNotice(err.Error(), "error", noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("Copied %d rows", m.result.raw.NumRows()), "success", noticeDuration)
}

// baseName is the selected file name without its extension.
func (m *model) baseName() string {
	name := filepath.Base(m.sidebar.selectedFile())
	if name == "." || name == "" {
		return "dynonview"
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (m *model) defaultSaveName() string {
	return fmt.Sprintf("%s-rows-%d-%d.csv", m.baseName(), m.sidebar.rangeMin, m.sidebar.rangeMax)
}

func (m *model) defaultExportName(kind dialogs.ExportKind) string {
	return fmt.Sprintf("%s-%s.png", m.baseName(), kind)
}

func (m *model) openSaveDialog() tea.Cmd {
	if m.result.raw == nil {
		return m.startNotice("Enable \"Show data\" to save rows", "warn", noticeDuration)
	}
	d := dialogs.NewSaveDialog(m.defaultSaveName(), m.cfg.ExportDir)
	m.activeDialog = d
	return d.Init()
}

func (m *model) openExportDialog(kind dialogs.ExportKind) tea.Cmd {
	if kind == dialogs.ExportPlot && m.result.figure == nil {
		return m.startNotice("Enable \"Show plot\" to export it", "warn", noticeDuration)
	}
	if kind == dialogs.ExportTrack && m.result.track == nil {
		return m.startNotice("Enable \"Show track\" to export it", "warn", noticeDuration)
	}
	d := dialogs.NewExportDialog(kind, m.defaultExportName(kind), m.cfg.ExportDir)
	m.activeDialog = d
	return d.Init()
}
