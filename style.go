package main

import "github.com/charmbracelet/lipgloss"

const (
	rowTextFGColor         = "#c0c0c0"
	rowSelectedTextFGColor = "#e0e0e0"
	rowSelectedBGColor     = "#3a3a3a"
	missingCellFGColor     = "#6c6c6c"
)

const sidebarWidth = 36

var (
	appstyle = lipgloss.NewStyle().Margin(1, 2)

	headerStyle = lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.Border{
		Left:  " ",
		Right: " ",
	}).BorderLeft(true).BorderRight(true)
	rowStyle         = lipgloss.NewStyle()
	rowSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color(rowSelectedBGColor))

	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	tableStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff9f1c"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	// one per overlay, matching the braille preview line colours
	seriesStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("250")),
	}
	missingCellStyle = cellStyle.Foreground(lipgloss.Color(missingCellFGColor))

	sidebarBox = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	sidebarTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0e0e0"))
	sidebarItem    = lipgloss.NewStyle().Foreground(lipgloss.Color(rowTextFGColor))
	sidebarFocused = lipgloss.NewStyle().Background(lipgloss.Color(rowSelectedBGColor)).Foreground(lipgloss.Color(rowSelectedTextFGColor))
	sidebarDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	rangeWindowArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 0).BorderLeft(true)
)
