package main

import (
	"fmt"
	"strings"

	"github.com/andareed/dynonview/config"
	"github.com/andareed/dynonview/dataset"
	"github.com/andareed/dynonview/display"
	"github.com/andareed/dynonview/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	sampleRateMin  = 1
	sampleRateMax  = 100
	sampleRateStep = 10
)

type controlKind int

const (
	ctlFile controlKind = iota
	ctlRange
	ctlSampleRate
	ctlShowPlot
	ctlMultiY
	ctlXAxis
	ctlOverlays
	ctlYAxis
	ctlShowData
	ctlShowTrack
)

// sidebarRow is one focusable control. slot is the overlay number for
// ctlYAxis rows and unused otherwise.
type sidebarRow struct {
	kind controlKind
	slot int
}

// sidebar holds the control values that become display.Options.
type sidebar struct {
	defaults config.DefaultsConfig

	files   []string
	fileIdx int

	columns []string
	numRows int

	rangeMin   int
	rangeMax   int
	sampleRate int

	showPlot  bool
	multiY    bool
	showData  bool
	showTrack bool

	xIdx     int
	overlays int
	yIdx     [display.MaxOverlays]int

	// set while a selector still shows a default that had to be clamped
	xClamped bool
	yClamped [display.MaxOverlays]bool

	focus int
}

func newSidebar(defaults config.DefaultsConfig) sidebar {
	return sidebar{
		defaults:   defaults,
		sampleRate: clamp(defaults.SampleRate, sampleRateMin, sampleRateMax),
		overlays:   1,
	}
}

// setFiles replaces the file list, keeping selected when it is present.
func (s *sidebar) setFiles(files []string, selected string) {
	s.files = files
	s.fileIdx = 0
	for i, f := range files {
		if f == selected {
			s.fileIdx = i
			break
		}
	}
}

func (s *sidebar) selectedFile() string {
	if s.fileIdx < 0 || s.fileIdx >= len(s.files) {
		return ""
	}
	return s.files[s.fileIdx]
}

// Collect turns the current control values into display options. A table
// with a different column set resets the range and the axis selectors.
func (s *sidebar) Collect(t *dataset.Table) (display.Options, []string) {
	if !s.sameColumns(t) {
		s.resetFor(t)
	}

	opts := display.Options{
		ShowPlot:    s.showPlot,
		ShowRawData: s.showData,
		ShowTrack:   s.showTrack,
		MinID:       s.rangeMin,
		MaxID:       s.rangeMax,
		SampleRate:  s.sampleRate,
		MultiY:      s.multiY,
	}
	if len(s.columns) == 0 {
		return opts, []string{"No columns with data in this file"}
	}

	var warnings []string
	opts.XAxis = s.columns[s.xIdx]
	if s.xClamped {
		warnings = append(warnings, fmt.Sprintf("X-axis default column %d is out of range, using %q", s.defaults.XIndex+1, opts.XAxis))
	}
	for i := 0; i < s.overlays; i++ {
		name := s.columns[s.yIdx[i]]
		opts.YAxis = append(opts.YAxis, name)
		if s.yClamped[i] {
			warnings = append(warnings, fmt.Sprintf("Y-axis %d default column %d is out of range, using %q", i+1, s.defaults.YIndexBase+i+1, name))
		}
	}
	return opts, warnings
}

func (s *sidebar) sameColumns(t *dataset.Table) bool {
	if t == nil {
		return s.numRows == 0 && len(s.columns) == 0
	}
	if t.NumRows() != s.numRows || t.NumCols() != len(s.columns) {
		return false
	}
	for i, c := range t.Columns {
		if c.Name != s.columns[i] {
			return false
		}
	}
	return true
}

// forget drops the remembered column set so the next Collect resets.
func (s *sidebar) forget() {
	s.columns = nil
	s.numRows = -1
}

func (s *sidebar) resetFor(t *dataset.Table) {
	s.numRows = t.NumRows()
	s.columns = nil
	if t != nil {
		s.columns = t.Names()
	}
	n := len(s.columns)

	s.rangeMin = 0
	s.rangeMax = clamp(s.defaults.RangeMax, 0, s.numRows)

	s.xIdx, s.xClamped = display.ClampIndex(s.defaults.XIndex, n)
	for i := range s.yIdx {
		s.yIdx[i], s.yClamped[i] = display.ClampIndex(s.defaults.YIndexBase+i, n)
	}
	logging.Debugf("sidebar reset: %d rows, %d columns, x=%d y=%v", s.numRows, n, s.xIdx, s.yIdx)
}

// rows lists the focusable controls in display order.
func (s *sidebar) rows() []sidebarRow {
	out := []sidebarRow{
		{kind: ctlFile}, {kind: ctlRange}, {kind: ctlSampleRate},
		{kind: ctlShowPlot}, {kind: ctlMultiY}, {kind: ctlXAxis}, {kind: ctlOverlays},
	}
	for i := 0; i < s.overlays; i++ {
		out = append(out, sidebarRow{kind: ctlYAxis, slot: i})
	}
	return append(out, sidebarRow{kind: ctlShowData}, sidebarRow{kind: ctlShowTrack})
}

func (s *sidebar) focused() sidebarRow {
	rows := s.rows()
	s.focus = clamp(s.focus, 0, len(rows)-1)
	return rows[s.focus]
}

func (s *sidebar) moveFocus(delta int) {
	s.focus = clamp(s.focus+delta, 0, len(s.rows())-1)
}

// change steps the focused control by delta. It reports whether the file
// selection changed.
func (s *sidebar) change(delta int) bool {
	row := s.focused()
	switch row.kind {
	case ctlFile:
		if len(s.files) == 0 {
			return false
		}
		prev := s.fileIdx
		s.fileIdx = wrap(s.fileIdx+delta, len(s.files))
		return s.fileIdx != prev
	case ctlRange:
		s.shiftRange(delta * rangeStepDefault)
	case ctlSampleRate:
		s.sampleRate = clamp(s.sampleRate+delta*sampleRateStep, sampleRateMin, sampleRateMax)
	case ctlXAxis:
		if len(s.columns) > 0 {
			s.xIdx = wrap(s.xIdx+delta, len(s.columns))
			s.xClamped = false
		}
	case ctlOverlays:
		s.overlays = clamp(s.overlays+delta, 1, display.MaxOverlays)
	case ctlYAxis:
		if len(s.columns) > 0 {
			s.yIdx[row.slot] = wrap(s.yIdx[row.slot]+delta, len(s.columns))
			s.yClamped[row.slot] = false
		}
	default:
		s.toggle()
	}
	return false
}

func (s *sidebar) toggle() {
	switch s.focused().kind {
	case ctlShowPlot:
		s.showPlot = !s.showPlot
	case ctlMultiY:
		s.multiY = !s.multiY
	case ctlShowData:
		s.showData = !s.showData
	case ctlShowTrack:
		s.showTrack = !s.showTrack
	}
}

// shiftRange moves the range window by delta rows, keeping its width.
func (s *sidebar) shiftRange(delta int) {
	width := s.rangeMax - s.rangeMin
	lo := clamp(s.rangeMin+delta, 0, max(0, s.numRows-width))
	s.rangeMin, s.rangeMax = lo, lo+width
}

// setRange stores a window, clamped to [0, numRows] and ordered.
func (s *sidebar) setRange(lo, hi int) {
	lo = clamp(lo, 0, s.numRows)
	hi = clamp(hi, 0, s.numRows)
	if lo > hi {
		lo, hi = hi, lo
	}
	s.rangeMin, s.rangeMax = lo, hi
}

func (s *sidebar) setSampleRate(v int) {
	s.sampleRate = clamp(v, sampleRateMin, sampleRateMax)
}

// assignColumn points the focused axis selector at column name.
func (s *sidebar) assignColumn(name string) error {
	idx := -1
	for i, c := range s.columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("no column %q", name)
	}
	row := s.focused()
	switch row.kind {
	case ctlXAxis:
		s.xIdx, s.xClamped = idx, false
	case ctlYAxis:
		s.yIdx[row.slot], s.yClamped[row.slot] = idx, false
	default:
		return fmt.Errorf("focus an axis selector first")
	}
	return nil
}

// findColumn returns the first column whose name contains query, ignoring case.
func (s *sidebar) findColumn(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, c := range s.columns {
		if strings.EqualFold(c, q) {
			return c, true
		}
	}
	for _, c := range s.columns {
		if strings.Contains(strings.ToLower(c), q) {
			return c, true
		}
	}
	return "", false
}

func (s *sidebar) columnName(i int) string {
	if i < 0 || i >= len(s.columns) {
		return "-"
	}
	return s.columns[i]
}

func (s *sidebar) View(width int, active bool) string {
	inner := max(10, width-4)
	var lines []string
	lines = append(lines, sidebarTitle.Render("Load data"))

	for i, row := range s.rows() {
		switch row.kind {
		case ctlShowPlot:
			lines = append(lines, "", sidebarTitle.Render("Display configuration"))
		case ctlShowData:
			lines = append(lines, "", sidebarTitle.Render("Auxiliary information"))
		}
		label, value := s.describe(row)
		text := label
		if value != "" {
			text += ": " + value
		}
		text = truncate.StringWithTail(text, uint(inner-2), "…")

		prefix := "  "
		style := sidebarItem
		if i == s.focus {
			prefix = "▸ "
			if active {
				style = sidebarFocused
			}
		}
		lines = append(lines, style.Render(prefix+text))
		if row.kind == ctlRange {
			lines = append(lines, sidebarDim.Render(fmt.Sprintf("  Range of data to display: %d %d", s.rangeMin, s.rangeMax)))
		}
	}
	return sidebarBox.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (s *sidebar) describe(row sidebarRow) (string, string) {
	switch row.kind {
	case ctlFile:
		name := s.selectedFile()
		if name == "" {
			name = "(no files)"
		}
		return "File", name
	case ctlRange:
		return "Range", fmt.Sprintf("%d-%d of %d", s.rangeMin, s.rangeMax, s.numRows)
	case ctlSampleRate:
		return "Sample Rate", fmt.Sprintf("%d", s.sampleRate)
	case ctlShowPlot:
		return checkbox(s.showPlot) + " Show plot", ""
	case ctlMultiY:
		return checkbox(s.multiY) + " Multiple Y-axis", ""
	case ctlXAxis:
		return "X-axis", s.columnName(s.xIdx)
	case ctlOverlays:
		return "Number of overlays", fmt.Sprintf("%d", s.overlays)
	case ctlYAxis:
		return fmt.Sprintf("Y-axis %d", row.slot+1), s.columnName(s.yIdx[row.slot])
	case ctlShowData:
		return checkbox(s.showData) + " Show data", ""
	case ctlShowTrack:
		return checkbox(s.showTrack) + " Show track", ""
	}
	return "", ""
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func wrap(v, n int) int {
	if n <= 0 {
		return 0
	}
	return ((v % n) + n) % n
}
