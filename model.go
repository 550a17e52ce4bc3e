package main

import (
	"fmt"
	"path/filepath"

	"github.com/andareed/dynonview/config"
	"github.com/andareed/dynonview/dataset"
	"github.com/andareed/dynonview/dialogs"
	"github.com/andareed/dynonview/logging"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	cfg   *config.Config
	cache *dataset.Cache
	keys  Keymap

	table     *dataset.Table
	tablePath string
	loading   bool
	loadErr   error
	fromCache bool

	sidebar sidebar
	result  cycleResult

	viewport       viewport.Model
	ready          bool
	terminalWidth  int
	terminalHeight int

	// raw data view
	cursor    int
	rawHeader []ColumnMeta
	rawRows   []renderedRow
	rawTop    int // content line of the first data row

	ui           uiState
	activeDialog dialogs.Dialog
	help         help.Model
}

type tableLoadedMsg struct {
	path   string
	table  *dataset.Table
	err    error
	cached bool
}

func newModel(cfg *config.Config, cache *dataset.Cache, files []string, selected string) *model {
	h := help.New()
	h.Styles = help.Styles{}
	h.ShortSeparator = " · "

	m := &model{
		cfg:     cfg,
		cache:   cache,
		keys:    Keys,
		sidebar: newSidebar(cfg.Defaults),
		help:    h,
	}
	m.ui.rangeWindow = newRangeWindowUI()
	m.sidebar.setFiles(files, selected)
	return m
}

func (m *model) Init() tea.Cmd {
	logging.Infof("dynonview: initialised with %d files in %s", len(m.sidebar.files), m.cfg.DataDir)
	return m.loadSelected()
}

func (m *model) filePath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.cfg.DataDir, name)
}

// loadSelected starts an asynchronous load of the file chosen in the sidebar.
func (m *model) loadSelected() tea.Cmd {
	name := m.sidebar.selectedFile()
	if name == "" {
		m.table, m.tablePath, m.loading = nil, "", false
		m.recompute()
		return nil
	}
	path := m.filePath(name)
	m.tablePath = path
	m.loading = true
	m.loadErr = nil
	m.refreshView("load-start")
	return loadTableCmd(m.cache, path)
}

func loadTableCmd(cache *dataset.Cache, path string) tea.Cmd {
	return func() tea.Msg {
		hits := cache.Stats().Hits
		t, err := cache.Load(path)
		return tableLoadedMsg{path: path, table: t, err: err, cached: cache.Stats().Hits > hits}
	}
}

func (m *model) handleTableLoaded(msg tableLoadedMsg) tea.Cmd {
	if msg.path != m.tablePath {
		logging.Debugf("dropping stale load of %s", msg.path)
		return nil
	}
	m.loading = false
	if msg.err != nil {
		m.table = nil
		m.loadErr = msg.err
		m.recompute()
		return m.startNotice(fmt.Sprintf("Could not load %s", filepath.Base(msg.path)), "error", noticeDuration)
	}
	m.table = msg.table
	m.loadErr = nil
	m.fromCache = msg.cached
	logging.Infof("loaded %s: %d rows, %d columns", msg.path, m.table.NumRows(), m.table.NumCols())
	m.recompute()
	return nil
}

// recompute runs one display cycle against the current table and redraws.
func (m *model) recompute() {
	m.result = runCycle(m.table, &m.sidebar)
	m.rawHeader, m.rawRows = nil, nil
	if raw := m.result.raw; raw != nil {
		m.rawHeader = buildColumnMeta(raw)
		m.rawRows = rowsOf(raw)
	}
	m.cursor = clamp(m.cursor, 0, max(0, len(m.rawRows)-1))
	m.refreshView("recompute")
}

func (m *model) rescan() tea.Cmd {
	files, err := dataset.Discover(m.cfg.DataDir, m.cfg.Extension)
	if err != nil {
		logging.Warnf("rescan %s: %v", m.cfg.DataDir, err)
		return m.startNotice(fmt.Sprintf("Cannot read %s", m.cfg.DataDir), "error", noticeDuration)
	}
	m.sidebar.setFiles(files, m.sidebar.selectedFile())
	if name := m.sidebar.selectedFile(); name != "" {
		m.cache.Invalidate(m.filePath(name))
	}
	m.sidebar.forget()
	return tea.Batch(m.loadSelected(), m.startNotice(fmt.Sprintf("%d files found", len(files)), "info", noticeDuration))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth, m.terminalHeight = msg.Width, msg.Height
		m.ready = true
		m.refreshView("resize")
		return m, nil

	case clearNoticeMsg:
		m.clearNotice(msg)
		return m, nil

	case tableLoadedMsg:
		return m, m.handleTableLoaded(msg)

	case dialogs.SaveConfirmedMsg:
		m.activeDialog = nil
		if err := m.saveSlice(msg.Path); err != nil {
			logging.Errorf("save %s: %v", msg.Path, err)
			return m, m.startNotice("Save failed: "+err.Error(), "error", noticeDuration)
		}
		return m, m.startNotice("Saved "+msg.Path, "success", noticeDuration)

	case dialogs.ExportConfirmedMsg:
		m.activeDialog = nil
		if err := m.exportChart(msg.Kind, msg.Path); err != nil {
			logging.Errorf("export %s %s: %v", msg.Kind, msg.Path, err)
			return m, m.startNotice("Export failed: "+err.Error(), "error", noticeDuration)
		}
		return m, m.startNotice("Exported "+msg.Path, "success", noticeDuration)

	case dialogs.SaveCanceledMsg, dialogs.ExportCanceledMsg:
		m.activeDialog = nil
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		d, cmd := m.activeDialog.Update(msg)
		m.activeDialog = d
		if !d.IsVisible() {
			m.activeDialog = nil
		}
		return m, cmd
	}

	switch m.ui.mode {
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeRange:
		return m.handleRangeKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.OpenHelp):
		m.activeDialog = dialogs.NewHelpDialog(m.keys.Legend())
		return m, nil
	case key.Matches(msg, m.keys.SwitchPane):
		if m.ui.pane == paneSidebar {
			m.ui.pane = paneMain
		} else {
			m.ui.pane = paneSidebar
		}
		m.refreshView("pane")
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m, m.rescan()
	case key.Matches(msg, m.keys.Jump):
		m.startCommand(CmdJump)
		return m, nil
	case key.Matches(msg, m.keys.SearchColumn):
		m.ui.pane = paneSidebar
		m.startCommand(CmdSearch)
		return m, nil
	case key.Matches(msg, m.keys.SaveToFile):
		return m, m.openSaveDialog()
	case key.Matches(msg, m.keys.ExportPlot):
		return m, m.openExportDialog(dialogs.ExportPlot)
	case key.Matches(msg, m.keys.ExportTrack):
		return m, m.openExportDialog(dialogs.ExportTrack)
	case key.Matches(msg, m.keys.CopyData):
		return m, m.copySlice()
	}

	if m.ui.pane == paneSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m *model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.sidebar.moveFocus(1)
	case key.Matches(msg, m.keys.Decrease):
		return m, m.changeControl(-1)
	case key.Matches(msg, m.keys.Increase):
		return m, m.changeControl(1)
	case key.Matches(msg, m.keys.Toggle):
		m.sidebar.toggle()
		m.recompute()
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		switch m.sidebar.focused().kind {
		case ctlRange, ctlSampleRate:
			m.openRangeDrawer()
		case ctlXAxis, ctlYAxis:
			m.startCommand(CmdSearch)
		case ctlFile:
			return m, m.changeControl(1)
		default:
			m.sidebar.toggle()
			m.recompute()
		}
		return m, nil
	}
	m.refreshView("sidebar")
	return m, nil
}

// changeControl steps the focused sidebar control. A new file selection
// starts a load; every other change reruns the cycle.
func (m *model) changeControl(delta int) tea.Cmd {
	if m.sidebar.change(delta) {
		m.sidebar.forget()
		m.cursor = 0
		return m.loadSelected()
	}
	m.recompute()
	return nil
}

func (m *model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.pageSize())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.pageSize())
	case key.Matches(msg, m.keys.Decrease):
		m.viewport.ScrollLeft(4)
	case key.Matches(msg, m.keys.Increase):
		m.viewport.ScrollRight(4)
	case msg.String() == "g":
		m.jumpToStart()
	case msg.String() == "G":
		m.jumpToEnd()
	}
	return m, nil
}
