package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/andareed/dynonview/logging"
	"github.com/andareed/dynonview/plot"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

const appTitle = "Dynon Skyview Log Viewer"

// layout sizes the main viewport from the terminal size. The sidebar sits
// left of it; the range drawer and the footer sit below.
func (m *model) layout() {
	w := m.terminalWidth - 4 - sidebarWidth - 1 - 2 // margins, sidebar, gap, border
	h := m.terminalHeight - 2 - 2 - 2                // margins, footer, border
	if m.ui.rangeWindow.open {
		h -= rangeDrawerHeight
	}
	m.viewport.Width = max(10, w)
	m.viewport.Height = max(3, h)
}

// refreshView re-renders the main content into the viewport.
func (m *model) refreshView(reason string) {
	if !m.ready {
		return
	}
	logging.Debugf("refreshView: %s", reason)
	m.layout()
	m.viewport.SetContent(m.renderMain())
}

type contentBuilder struct {
	lines []string
}

func (b *contentBuilder) add(s string) {
	b.lines = append(b.lines, strings.Split(s, "\n")...)
}

func (b *contentBuilder) String() string {
	return strings.Join(b.lines, "\n")
}

func (m *model) renderMain() string {
	width := m.viewport.Width
	var b contentBuilder
	b.add(titleStyle.Render(appTitle))
	b.add("")

	switch {
	case m.loading:
		b.add(captionStyle.Render(fmt.Sprintf("Loading %s…", filepath.Base(m.tablePath))))
		return b.String()
	case m.loadErr != nil:
		b.add(errorStyle.Render(fmt.Sprintf("Could not load %s: %v", filepath.Base(m.tablePath), m.loadErr)))
		return b.String()
	case m.table == nil:
		b.add(captionStyle.Render(fmt.Sprintf("No %s files in %s", m.cfg.Extension, m.cfg.DataDir)))
		return b.String()
	}

	for _, w := range m.result.warnings {
		b.add(warningStyle.Render("! " + w))
	}

	opts := m.result.opts
	if !opts.ShowPlot && !opts.ShowRawData && !opts.ShowTrack {
		b.add(captionStyle.Render("Tick Show plot, Show data or Show track in the sidebar."))
	}

	if fig := m.result.figure; fig != nil {
		b.add("")
		b.add(sectionStyle.Render("Plot"))
		caption := fmt.Sprintf("x: %s (%s)", fig.XTitle, fig.XKind)
		if fig.YTitle != "" {
			caption += "   y: " + fig.YTitle
		}
		caption += fmt.Sprintf("   %d points", fig.Points())
		b.add(captionStyle.Render(caption))
		if len(fig.Series) > 1 {
			var legend []string
			for i, s := range fig.Series {
				legend = append(legend, seriesStyles[i%len(seriesStyles)].Render("● "+s.Name))
			}
			b.add(strings.Join(legend, "  "))
		}
		if preview := plot.Preview(fig, width, m.previewHeight()); preview != "" {
			b.add(preview)
			if trend := plot.Trend(fig, width, 3); trend != "" {
				b.add(captionStyle.Render("trend by sample"))
				b.add(trend)
			}
		} else {
			b.add(captionStyle.Render("(no numeric samples in range)"))
		}
	}

	m.rawTop = -1
	if raw := m.result.raw; raw != nil {
		b.add("")
		b.add(sectionStyle.Render(fmt.Sprintf("Data (%d rows)", raw.NumRows())))
		m.rawHeader = layoutColumns(m.rawHeader, width-m.gutterWidth())
		b.add(m.headerView())
		m.rawTop = len(b.lines)
		for i := range m.rawRows {
			b.add(m.renderRowAt(i))
		}
	}

	if tr := m.result.track; tr != nil {
		b.add("")
		b.add(sectionStyle.Render("Track"))
		b.add(captionStyle.Render(fmt.Sprintf("%d of %d fixes with coordinates", tr.ValidPoints(), len(tr.Points))))
		if preview := plot.TrackPreview(tr, width, m.previewHeight()); preview != "" {
			b.add(preview)
		}
	}
	return b.String()
}

func (m *model) headerView() string {
	gutter := m.gutterWidth()
	var cells []string
	for _, col := range m.rawHeader {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, cellStyle.Width(col.Width).Render(col.Name))
	}
	return headerStyle.Render(strings.Repeat(" ", gutter) + lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

func (m *model) gutterWidth() int {
	return len(fmt.Sprintf("%d", len(m.rawRows))) + 1
}

// renderRowAt renders one data row with its index gutter. The cursor row
// gets the selected colours, re-applied after each cell's reset.
func (m *model) renderRowAt(i int) string {
	if i < 0 || i >= len(m.rawRows) {
		return ""
	}
	row := m.rawRows[i]

	selected := i == m.cursor && m.ui.pane == paneMain
	gutterStyle := rowStyle
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if selected {
		gutterStyle = rowSelectedStyle
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}
	rowSuffix := termenv.CSI + "0m"

	gutter := gutterStyle.Render(fmt.Sprintf("%*d ", m.gutterWidth()-1, row.originalIndex))
	content := row.Render(cellStyle, missingCellStyle, m.rawHeader)
	if selected {
		content = restoreRowStyleAfterReset(content, rowPrefix)
	}
	return gutter + rowPrefix + content + rowSuffix
}

func (m *model) previewHeight() int {
	return clamp(m.viewport.Height/2, 8, 20)
}

func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	if rowPrefix == "" {
		return s
	}
	reset := termenv.CSI + "0m"
	if !strings.Contains(s, reset) {
		return s
	}
	return strings.ReplaceAll(s, reset, reset+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	profile := lipgloss.ColorProfile()
	tc := profile.Color(value)
	if tc == nil {
		return ""
	}
	return termenv.CSI + tc.Sequence(bg) + "m"
}

func (m *model) modeLabel() string {
	switch m.ui.mode {
	case modeCommand:
		if m.ui.command.cmd == CmdSearch {
			return "COLUMN"
		}
		return "JUMP"
	case modeRange:
		return "RANGE"
	}
	if m.ui.pane == paneMain {
		return "DATA"
	}
	return "SIDEBAR"
}

func (m *model) loadState() loadState {
	switch {
	case m.loading:
		return loadBusy
	case m.loadErr != nil:
		return loadFailed
	case m.table == nil:
		return loadIdle
	case m.fromCache:
		return loadCached
	}
	return loadRead
}

// footerView renders the 2-line footer.
func (m *model) footerView(width int) string {
	st := footerState{
		Mode:       m.modeLabel(),
		FileName:   m.sidebar.selectedFile(),
		Load:       m.loadState(),
		Plot:       m.sidebar.showPlot,
		Data:       m.sidebar.showData,
		Track:      m.sidebar.showTrack,
		RangeLabel: fmt.Sprintf("%d-%d", m.sidebar.rangeMin, m.sidebar.rangeMax),
		SampleRate: m.sidebar.sampleRate,
		Shown:      len(m.rawRows),
		Legend:     "(" + m.help.ShortHelpView(m.keys.ShortHelp()) + ")",
	}
	if m.table != nil {
		st.TotalRows = m.table.NumRows()
		st.Selected = m.result.selected
	}
	if len(m.rawRows) > 0 {
		st.Row = m.cursor + 1
	}
	if m.ui.mode == modeCommand {
		st.ModeInput = m.activeCommandLine()
	}
	if m.ui.noticeMsg != "" {
		st.Status = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	}
	if st.Status == "" {
		st.Status = m.rangeStatusLabel()
	}

	if logging.IsDebugMode() {
		cs := m.cache.Stats()
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d vp=%dx%d cur=%d cache=%d/%d/%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, cs.Hits, cs.Misses, cs.Entries)
	}
	return renderFooter(width, st)
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return lipgloss.Place(
			m.terminalWidth, m.terminalHeight,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	side := m.sidebar.View(sidebarWidth, m.ui.pane == paneSidebar)
	main := tableStyle.Render(m.viewport.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, side, " ", main)
	contentW := lipgloss.Width(body)

	parts := []string{body}
	if m.ui.rangeWindow.open {
		parts = append(parts, m.rangeDrawerView(contentW-1))
	}
	parts = append(parts, m.footerView(contentW))
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
