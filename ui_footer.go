package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type loadState int

const (
	loadIdle loadState = iota
	loadBusy
	loadRead
	loadCached
	loadFailed
)

func (s loadState) String() string {
	switch s {
	case loadBusy:
		return "loading"
	case loadRead:
		return "read"
	case loadCached:
		return "cached"
	case loadFailed:
		return "failed"
	}
	return "no file"
}

// footerState is everything the two footer lines show.
type footerState struct {
	Mode      string
	ModeInput string

	FileName string
	Load     loadState

	Plot, Data, Track bool

	// Selected is the number of rows the range and stride pick out of
	// TotalRows.
	Selected   int
	TotalRows  int
	RangeLabel string
	SampleRate int

	// Row is the 1-based data cursor within Shown rendered rows.
	Row   int
	Shown int

	Status string
	Legend string
}

var (
	footerBar    = lipgloss.NewStyle().Background(lipgloss.Color("#2b2b2b")).Foreground(lipgloss.Color("#cfcfcf"))
	footerMode   = lipgloss.NewStyle().Background(lipgloss.Color("#ff9f1c")).Foreground(lipgloss.Color("#000000")).Padding(0, 1)
	footerFile   = footerBar.Foreground(lipgloss.Color("#e0e0e0"))
	footerDim    = footerBar.Foreground(lipgloss.Color("#a0a0a0"))
	footerViewOn = footerBar.Foreground(lipgloss.Color("#ff9f1c")).Bold(true)

	footerLoad = map[loadState]lipgloss.Style{
		loadIdle:   footerDim,
		loadBusy:   footerBar.Foreground(lipgloss.Color("11")),
		loadRead:   footerBar.Foreground(lipgloss.Color("10")),
		loadCached: footerBar.Foreground(lipgloss.Color("14")),
		loadFailed: footerBar.Foreground(lipgloss.Color("9")).Bold(true),
	}

	footerStatusBar = lipgloss.NewStyle().Background(lipgloss.Color("#000000")).Foreground(lipgloss.Color("#9a9a9a"))
	footerLegend    = footerStatusBar.Foreground(lipgloss.Color("#b0b0b0"))
)

func renderFooter(width int, st footerState) string {
	if width <= 0 {
		return ""
	}
	return controlBar(width, st) + "\n" + statusBar(width, st)
}

// controlBar is mode, file and load state on the left, and the view
// toggles, selection and cursor on the right. The file name gives way first.
func controlBar(width int, st footerState) string {
	mode := st.Mode
	if mode == "" {
		mode = "SIDEBAR"
	}
	left := footerMode.Render(mode) + footerBar.Render(" ")

	gap := footerDim.Render(" · ")
	right := strings.Join([]string{
		footerLoad[st.Load].Render(st.Load.String()),
		viewToggles(st),
		footerDim.Render(fmt.Sprintf("[RANGE: %s] [RATE: %d]", orDash(st.RangeLabel), st.SampleRate)),
		footerBar.Render(fmt.Sprintf("Sel %d/%d", st.Selected, st.TotalRows)),
		footerBar.Render(fmt.Sprintf("Row %d/%d", st.Row, st.Shown)),
	}, gap) + footerBar.Render(" ")

	fileW := width - lipgloss.Width(left) - lipgloss.Width(right)
	name := strings.TrimSpace(st.FileName)
	if name == "" {
		name = "(no file)"
	}
	name = "▸ " + name
	if in := strings.TrimSpace(st.ModeInput); in != "" {
		name += " ▸ " + in
	}
	file := ""
	if fileW > 0 {
		file = footerFile.Render(truncate.StringWithTail(name, uint(fileW), "…"))
	}
	return fitBar(left+file, right, width, footerBar)
}

func viewToggles(st footerState) string {
	toggle := func(label string, on bool) string {
		if on {
			return footerViewOn.Render(label)
		}
		return footerDim.Render(strings.ToLower(label))
	}
	return toggle("P", st.Plot) + toggle("D", st.Data) + toggle("T", st.Track)
}

func statusBar(width int, st footerState) string {
	legend := footerLegend.Render(st.Legend)
	msgW := width - lipgloss.Width(legend)
	msg := ""
	if msgW > 0 {
		msg = footerStatusBar.Render(truncate.String(st.Status, uint(msgW)))
	}
	return fitBar(msg, legend, width, footerStatusBar)
}

// fitBar pads between left and right with the bar style so the line spans
// exactly width cells, cutting from the right when it does not fit.
func fitBar(left, right string, width int, bar lipgloss.Style) string {
	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 0 {
		return truncate.String(left+right, uint(width))
	}
	return left + bar.Render(strings.Repeat(" ", pad)) + right
}

func orDash(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "-"
	}
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
