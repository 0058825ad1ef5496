package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#14B8A6")
	green  = lipgloss.Color("#22C55E")
	red    = lipgloss.Color("#EF4444")
	slate  = lipgloss.Color("#94A3B8")
	ink    = lipgloss.Color("#E5E7EB")
	bgDark = lipgloss.Color("#0B1220")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ink).
			Background(bgDark).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderTop(false).
			BorderRight(false).
			BorderBottom(false).
			BorderForeground(accent).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(slate).
			Padding(0, 1)

	errStyle    = lipgloss.NewStyle().Foreground(red)
	openStyle   = lipgloss.NewStyle().Bold(true).Foreground(red)
	closedStyle = lipgloss.NewStyle().Foreground(green)
	dimStyle    = lipgloss.NewStyle().Foreground(slate)
)
