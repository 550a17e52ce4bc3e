package main

type mode int

const (
	modeView mode = iota
	modeCommand
	modeRange
)

type pane int

const (
	paneSidebar pane = iota
	paneMain
)

type uiState struct {
	mode         mode
	pane         pane
	command      CommandInput
	rangeWindow  rangeWindowUI
	noticeMsg    string
	noticeType   string
	noticeSeq    int
}
