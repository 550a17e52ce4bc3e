package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *model) openRangeDrawer() {
	rw := &m.ui.rangeWindow
	rw.open = true
	rw.errorMsg = ""
	rw.step = m.rangeStep()
	rw.draftStart = m.sidebar.rangeMin
	rw.draftEnd = m.sidebar.rangeMax
	rw.rateInput.SetValue(strconv.Itoa(m.sidebar.sampleRate))
	if m.table == nil {
		rw.errorMsg = "No data loaded"
	}
	m.updateRangeInputsFromDraft()
	m.setRangeFocus(rangeFocusStart)
	m.ui.mode = modeRange
	m.refreshView("range-open")
}

func (m *model) closeRangeDrawer() {
	m.ui.rangeWindow.open = false
	m.ui.rangeWindow.errorMsg = ""
	m.ui.mode = modeView
	m.refreshView("range-close")
}

func (m *model) handleRangeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rw := &m.ui.rangeWindow

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeRangeDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.applyRangeFromInputs()
		return m, nil
	case msg.Type == tea.KeyTab:
		m.setRangeFocus((rw.focus + 1) % rangeFocusCount)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.setRangeFocus((rw.focus + rangeFocusCount - 1) % rangeFocusCount)
		return m, nil
	case rw.focus == rangeFocusScrubber && msg.String() == "r":
		m.resetRangeDraft()
		return m, nil
	case rw.focus == rangeFocusScrubber && msg.Type == tea.KeyLeft:
		m.shiftRangeDraft(-m.rangeStep())
		return m, nil
	case rw.focus == rangeFocusScrubber && msg.Type == tea.KeyRight:
		m.shiftRangeDraft(m.rangeStep())
		return m, nil
	case rw.focus == rangeFocusScrubber && msg.Type == tea.KeyShiftLeft:
		m.expandRangeDraft(-m.rangeStep())
		return m, nil
	case rw.focus == rangeFocusScrubber && msg.Type == tea.KeyShiftRight:
		m.expandRangeDraft(m.rangeStep())
		return m, nil
	case rw.focus == rangeFocusScrubber && msg.String() == "-":
		m.adjustRangeStep(false)
		return m, nil
	case rw.focus == rangeFocusScrubber && (msg.String() == "+" || msg.String() == "="):
		m.adjustRangeStep(true)
		return m, nil
	}

	var cmd tea.Cmd
	switch rw.focus {
	case rangeFocusStart:
		rw.startInput, cmd = rw.startInput.Update(msg)
	case rangeFocusEnd:
		rw.endInput, cmd = rw.endInput.Update(msg)
	case rangeFocusRate:
		rw.rateInput, cmd = rw.rateInput.Update(msg)
	}
	return m, cmd
}

func (m *model) setRangeFocus(focus int) {
	rw := &m.ui.rangeWindow
	rw.focus = focus
	rw.startInput.Blur()
	rw.endInput.Blur()
	rw.rateInput.Blur()
	switch focus {
	case rangeFocusStart:
		rw.startInput.Focus()
	case rangeFocusEnd:
		rw.endInput.Focus()
	case rangeFocusRate:
		rw.rateInput.Focus()
	}
}

func (m *model) updateRangeInputsFromDraft() {
	rw := &m.ui.rangeWindow
	rw.startInput.SetValue(strconv.Itoa(rw.draftStart))
	rw.endInput.SetValue(strconv.Itoa(rw.draftEnd))
}

func (m *model) syncRangeDraftFromInputs() {
	rw := &m.ui.rangeWindow
	if n, ok := parseRow(strings.TrimSpace(rw.startInput.Value())); ok {
		rw.draftStart = clamp(n, 0, m.sidebar.numRows)
	}
	if n, ok := parseRow(strings.TrimSpace(rw.endInput.Value())); ok {
		rw.draftEnd = clamp(n, 0, m.sidebar.numRows)
	}
}

func (m *model) resetRangeDraft() {
	rw := &m.ui.rangeWindow
	rw.errorMsg = ""
	rw.draftStart = 0
	rw.draftEnd = clamp(m.cfg.Defaults.RangeMax, 0, m.sidebar.numRows)
	m.updateRangeInputsFromDraft()
}

func (m *model) applyRangeFromInputs() {
	rw := &m.ui.rangeWindow
	rw.errorMsg = ""

	if m.table == nil {
		rw.errorMsg = "No data loaded"
		return
	}

	start, ok := parseRow(strings.TrimSpace(rw.startInput.Value()))
	if !ok {
		rw.errorMsg = "Invalid start row"
		return
	}
	end, ok := parseRow(strings.TrimSpace(rw.endInput.Value()))
	if !ok {
		rw.errorMsg = "Invalid end row"
		return
	}
	if start > end {
		rw.errorMsg = "Start is after end"
		return
	}
	rate, err := strconv.Atoi(strings.TrimSpace(rw.rateInput.Value()))
	if err != nil {
		rw.errorMsg = "Invalid sample rate"
		return
	}

	m.sidebar.setRange(start, end)
	m.sidebar.setSampleRate(rate)
	rw.draftStart, rw.draftEnd = m.sidebar.rangeMin, m.sidebar.rangeMax
	m.closeRangeDrawer()
	m.recompute()
}

func (m *model) shiftRangeDraft(delta int) {
	rw := &m.ui.rangeWindow
	rw.errorMsg = ""
	m.syncRangeDraftFromInputs()

	total := m.sidebar.numRows
	width := rw.draftEnd - rw.draftStart
	if width < 0 {
		width = 0
	}
	if width >= total {
		rw.draftStart, rw.draftEnd = 0, total
		m.updateRangeInputsFromDraft()
		return
	}

	nextStart := rw.draftStart + delta
	nextEnd := rw.draftEnd + delta
	if nextStart < 0 {
		nextStart, nextEnd = 0, width
	}
	if nextEnd > total {
		nextStart, nextEnd = total-width, total
	}
	rw.draftStart, rw.draftEnd = nextStart, nextEnd
	m.updateRangeInputsFromDraft()
}

func (m *model) expandRangeDraft(delta int) {
	rw := &m.ui.rangeWindow
	rw.errorMsg = ""
	m.syncRangeDraftFromInputs()

	total := m.sidebar.numRows
	if delta < 0 {
		rw.draftStart = clamp(rw.draftStart+delta, 0, total)
		if rw.draftStart > rw.draftEnd {
			rw.draftEnd = rw.draftStart
		}
	} else if delta > 0 {
		rw.draftEnd = clamp(rw.draftEnd+delta, 0, total)
		if rw.draftEnd < rw.draftStart {
			rw.draftStart = rw.draftEnd
		}
	}
	m.updateRangeInputsFromDraft()
}

func (m *model) rangeStep() int {
	return clamp(m.ui.rangeWindow.step, rangeStepMin, rangeStepMax)
}

func (m *model) adjustRangeStep(increase bool) {
	step := m.rangeStep()
	if increase {
		step *= 2
	} else {
		step /= 2
	}
	m.ui.rangeWindow.step = clamp(step, rangeStepMin, rangeStepMax)
}

func (m *model) rangeDrawerView(width int) string {
	rw := &m.ui.rangeWindow
	innerWidth := max(0, width-2)
	lineStyle := lipgloss.NewStyle().Width(innerWidth)

	startLine := fmt.Sprintf("Start: %s", rw.startInput.View())
	endLine := fmt.Sprintf("End:   %s", rw.endInput.View())
	rateLine := fmt.Sprintf("Rate:  %s  (%d-%d)", rw.rateInput.View(), sampleRateMin, sampleRateMax)
	scrubberLine := m.rangeScrubberLine(innerWidth)
	helpLine := fmt.Sprintf("tab: next  enter: apply  esc: cancel  on bar: ←/→ move %d  shift+←/→ expand %d  -/+ step  r reset",
		m.rangeStep(), m.rangeStep())
	errorLine := ""
	if rw.errorMsg != "" {
		errorLine = "Error: " + rw.errorMsg
	}

	lines := []string{
		lineStyle.Render(startLine),
		lineStyle.Render(endLine),
		lineStyle.Render(rateLine),
		lineStyle.Render(scrubberLine),
		lineStyle.Render(helpLine),
		lineStyle.Render(errorLine),
	}
	return rangeWindowArea.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *model) rangeScrubberLine(width int) string {
	total := m.sidebar.numRows
	if total <= 0 {
		return "Scrubber: n/a"
	}
	rw := &m.ui.rangeWindow
	start, end := rw.draftStart, rw.draftEnd

	minLabel := "0"
	maxLabel := strconv.Itoa(total)
	padding := 2
	barWidth := width - len(minLabel) - len(maxLabel) - padding*2
	if barWidth < 10 {
		return fmt.Sprintf("Rows: %d - %d", start, end)
	}

	bar := []rune(strings.Repeat("-", barWidth))
	startPos := (barWidth - 1) * clamp(start, 0, total) / total
	endPos := (barWidth - 1) * clamp(end, 0, total) / total
	for i := startPos; i <= endPos; i++ {
		bar[i] = '='
	}
	bar[startPos] = '['
	bar[endPos] = ']'
	marker := ""
	if rw.focus == rangeFocusScrubber {
		marker = "▸"
	}
	return fmt.Sprintf("%s%s  %s  %s", marker, minLabel, string(bar), maxLabel)
}

func (m *model) rangeStatusLabel() string {
	if m.table == nil {
		return ""
	}
	return fmt.Sprintf("Rows %d-%d every %d", m.sidebar.rangeMin, m.sidebar.rangeMax, m.sidebar.sampleRate)
}
