package tui

import "github.com/charmbracelet/lipgloss"

var (
	green  = lipgloss.Color("#00FF00")
	yellow = lipgloss.Color("#FFFF00")
	red    = lipgloss.Color("#FF0000")
	cyan   = lipgloss.Color("#00FFFF")
	gray   = lipgloss.Color("#808080")

	BorderColor         = lipgloss.Color("8")
	RefreshBorderColor  = lipgloss.Color("14")
	DisabledBorderColor = lipgloss.Color("237")

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(cyan)
	statusStyle     = lipgloss.NewStyle().Foreground(gray)
	okStyle         = lipgloss.NewStyle().Foreground(green)
	failedStyle     = lipgloss.NewStyle().Foreground(red)
	noticeStyle     = lipgloss.NewStyle().Foreground(yellow)
	helpStyle       = lipgloss.NewStyle().Foreground(gray).Faint(true)
	emptyStyle      = lipgloss.NewStyle().Foreground(gray).Faint(true).Italic(true)
)
