package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel is a rounded box with its title set into the top border.
type Panel struct {
	Title       string
	Content     string
	Width       int
	Height      int
	BorderColor lipgloss.Color
}

const (
	minPanelWidth  = 4
	minPanelHeight = 3
)

// RenderPanel renders p at exactly Width x Height cells. Content lines
// wider than the box are truncated and extra rows are dropped.
func RenderPanel(p Panel) string {
	width := max(p.Width, minPanelWidth)
	height := max(p.Height, minPanelHeight)
	innerWidth := width - panelBorder
	innerHeight := height - panelBorder

	// lipgloss sizes a bordered block by its inner area.
	rendered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Width(innerWidth).
		Height(innerHeight).
		Render(fitContent(p.Content, innerWidth, innerHeight))

	if p.Title == "" {
		return rendered
	}

	lines := strings.Split(rendered, "\n")
	lines[0] = titledBorder(p.Title, width, p.BorderColor)
	return strings.Join(lines, "\n")
}

func fitContent(content string, width, height int) string {
	if content == "" {
		return ""
	}

	truncate := lipgloss.NewStyle().MaxWidth(width)
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = truncate.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// titledBorder builds "╭─ title ───╮" at the given total width.
func titledBorder(title string, width int, color lipgloss.Color) string {
	border := lipgloss.NewStyle().Foreground(color)

	// corners, one leading dash and the two spaces around the title
	room := width - 5
	if room < 1 {
		return border.Render("╭" + strings.Repeat("─", max(width-2, 0)) + "╮")
	}
	if lipgloss.Width(title) > room {
		title = lipgloss.NewStyle().MaxWidth(room-1).Render(title) + "…"
	}

	fill := max(width-lipgloss.Width(title)-5, 0)
	return border.Render("╭─ ") +
		panelTitleStyle.Render(title) +
		border.Render(" "+strings.Repeat("─", fill)+"╮")
}
