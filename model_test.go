package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andareed/dynonview/config"
	"github.com/andareed/dynonview/dataset"
	tea "github.com/charmbracelet/bubbletea"
)

const flightCSV = "Session Time,Altitude,Longitude (deg),Latitude (deg),Speed\n" +
	"10:00:00,1500,-122.000,47.000,100\n" +
	"10:00:01,1510,-122.001,47.001,101\n" +
	"10:00:02,1520,-122.002,47.002,102\n"

func testModel(t *testing.T, files map[string]string) *model {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	names, err := dataset.Discover(dir, ".csv")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.DataDir = dir
	m := newModel(cfg, dataset.NewCache(), names, "")
	m.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return m
}

// runLoad executes the load command the model returned and feeds the result back.
func runLoad(t *testing.T, m *model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	msg, ok := cmd().(tableLoadedMsg)
	if !ok {
		t.Fatalf("command produced %T", cmd())
	}
	m.Update(msg)
}

func TestModelLoadsSelectedFile(t *testing.T) {
	m := testModel(t, map[string]string{"a.csv": flightCSV})
	cmd := m.Init()
	if !m.loading {
		t.Fatal("model should be loading after Init")
	}
	runLoad(t, m, cmd)

	if m.loading || m.table == nil {
		t.Fatalf("table not loaded: err=%v", m.loadErr)
	}
	if m.table.NumRows() != 3 || m.sidebar.numRows != 3 {
		t.Fatalf("rows = %d / sidebar %d", m.table.NumRows(), m.sidebar.numRows)
	}
	if !strings.Contains(m.View(), appTitle) {
		t.Fatal("view is missing the title")
	}
}

func TestModelIgnoresStaleLoad(t *testing.T) {
	m := testModel(t, map[string]string{"a.csv": flightCSV, "b.csv": flightCSV})
	m.Init()
	m.Update(tableLoadedMsg{path: filepath.Join(m.cfg.DataDir, "b.csv"), table: flightLog(5)})
	if m.table != nil {
		t.Fatal("load for a file that is no longer selected was applied")
	}
}

func TestModelLoadFailureClearsTable(t *testing.T) {
	m := testModel(t, map[string]string{"a.csv": flightCSV})
	runLoad(t, m, m.Init())

	m.tablePath = filepath.Join(m.cfg.DataDir, "a.csv")
	m.Update(tableLoadedMsg{path: m.tablePath, err: errors.New("boom")})
	if m.table != nil || m.loadErr == nil {
		t.Fatal("failed load should clear the table and keep the error")
	}
	if m.result.figure != nil || m.result.raw != nil {
		t.Fatal("views should be empty after a failed load")
	}
}

func TestModelFileChangeStartsLoad(t *testing.T) {
	m := testModel(t, map[string]string{"a.csv": flightCSV, "b.csv": "Time,Altitude\n1,2\n"})
	runLoad(t, m, m.Init())

	m.ui.pane = paneSidebar
	m.sidebar.focus = 0 // file selector
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.sidebar.selectedFile() != "b.csv" {
		t.Fatalf("selected %q", m.sidebar.selectedFile())
	}
	runLoad(t, m, cmd)
	if m.table.NumCols() != 2 || len(m.sidebar.columns) != 2 {
		t.Fatalf("sidebar not reset for new file: %v", m.sidebar.columns)
	}
}

func TestModelToggleRecomputes(t *testing.T) {
	m := testModel(t, map[string]string{"a.csv": flightCSV})
	runLoad(t, m, m.Init())

	m.ui.pane = paneSidebar
	for i, row := range m.sidebar.rows() {
		if row.kind == ctlShowData {
			m.sidebar.focus = i
		}
	}
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.result.raw == nil {
		t.Fatalf("show data toggle did not build the data view: %v", m.result.warnings)
	}
	if len(m.rawRows) != m.result.raw.NumRows() {
		t.Fatalf("rendered %d rows of %d", len(m.rawRows), m.result.raw.NumRows())
	}
}

func TestJumpCommand(t *testing.T) {
	m := testModel(t, map[string]string{"a.csv": flightCSV})
	runLoad(t, m, m.Init())
	m.sidebar.showData = true
	m.sidebar.setSampleRate(1)
	m.recompute()
	if len(m.rawRows) != 3 {
		t.Fatalf("data rows = %d, want 3", len(m.rawRows))
	}

	m.startCommand(CmdJump)
	m.ui.command.buf = "2"
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.cursor != 2 || m.ui.pane != paneMain || m.ui.mode != modeView {
		t.Fatalf("cursor=%d pane=%d mode=%d", m.cursor, m.ui.pane, m.ui.mode)
	}

	m.startCommand(CmdJump)
	m.ui.command.buf = "99"
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.cursor != 2 || m.ui.noticeMsg == "" {
		t.Fatal("out of range jump should leave the cursor and warn")
	}
}

func TestColumnSearchAssignsFocusedAxis(t *testing.T) {
	m := testModel(t, map[string]string{"a.csv": flightCSV})
	runLoad(t, m, m.Init())
	for i, row := range m.sidebar.rows() {
		if row.kind == ctlXAxis {
			m.sidebar.focus = i
		}
	}
	m.assignSearchedColumn("session")
	if m.result.opts.XAxis != "Session Time" {
		t.Fatalf("x axis = %q", m.result.opts.XAxis)
	}
}

func TestFooterShowsCacheState(t *testing.T) {
	m := testModel(t, map[string]string{"a.csv": flightCSV})
	runLoad(t, m, m.Init())
	if got := m.loadState(); got != loadRead {
		t.Fatalf("first load state = %v, want read", got)
	}

	cmd := m.loadSelected()
	if got := m.loadState(); got != loadBusy {
		t.Fatalf("state while loading = %v", got)
	}
	runLoad(t, m, cmd)
	if got := m.loadState(); got != loadCached {
		t.Fatalf("second load state = %v, want cached", got)
	}
	if bar := m.footerView(160); !strings.Contains(bar, "cached") {
		t.Fatalf("footer missing cache state: %q", bar)
	}
}
