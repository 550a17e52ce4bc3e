package main

import (
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
)

const (
	rangeFocusStart = iota
	rangeFocusEnd
	rangeFocusRate
	rangeFocusScrubber
	rangeFocusCount
)

const (
	rangeDrawerContentHeight = 6
	rangeDrawerHeight        = rangeDrawerContentHeight + 2
	rangeStepMin             = 1
	rangeStepDefault         = 10
	rangeStepMax             = 10000
)

// rangeWindowUI is the drawer used to edit the row range and sample rate.
// Drafts only reach the sidebar on apply.
type rangeWindowUI struct {
	open       bool
	focus      int
	startInput textinput.Model
	endInput   textinput.Model
	rateInput  textinput.Model
	errorMsg   string
	draftStart int
	draftEnd   int
	step       int
}

func initRangeInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = width
	ti.Width = width
	ti.Prompt = ""
	return ti
}

func newRangeWindowUI() rangeWindowUI {
	return rangeWindowUI{
		startInput: initRangeInput("0", 9),
		endInput:   initRangeInput("100", 9),
		rateInput:  initRangeInput("10", 3),
		step:       rangeStepDefault,
	}
}

func parseRow(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
