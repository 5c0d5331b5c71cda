package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPanel_Dimensions(t *testing.T) {
	tests := []struct {
		name       string
		panel      Panel
		wantWidth  int
		wantHeight int
	}{
		{
			name:       "with title",
			panel:      Panel{Title: "git log", Content: "a\nb", Width: 30, Height: 6},
			wantWidth:  30,
			wantHeight: 6,
		},
		{
			name:       "without title",
			panel:      Panel{Content: "a", Width: 20, Height: 4},
			wantWidth:  20,
			wantHeight: 4,
		},
		{
			name:       "too small clamps",
			panel:      Panel{Title: "x", Width: 1, Height: 1},
			wantWidth:  minPanelWidth,
			wantHeight: minPanelHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderPanel(tt.panel)
			lines := strings.Split(out, "\n")

			assert.Len(t, lines, tt.wantHeight)
			for i, line := range lines {
				assert.Equal(t, tt.wantWidth, lipgloss.Width(line), "line %d: %q", i, line)
			}
		})
	}
}

func TestRenderPanel_TitleInTopBorder(t *testing.T) {
	out := RenderPanel(Panel{Title: "uptime", Content: "up 3 days", Width: 30, Height: 4})
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)

	assert.Contains(t, lines[0], "uptime")
	assert.Contains(t, lines[0], "╭─")
	assert.Contains(t, out, "up 3 days")
}

func TestRenderPanel_LongTitleIsTruncated(t *testing.T) {
	out := RenderPanel(Panel{Title: strings.Repeat("t", 50), Width: 20, Height: 3})
	top := strings.Split(out, "\n")[0]

	assert.Equal(t, 20, lipgloss.Width(top))
	assert.Contains(t, top, "…")
}

func TestFitContent(t *testing.T) {
	content := "short\n" + strings.Repeat("w", 40) + "\nthird\nfourth"

	out := fitContent(content, 10, 3)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "short", lines[0])
	assert.LessOrEqual(t, lipgloss.Width(lines[1]), 10)
	assert.Equal(t, "third", lines[2])
	assert.Empty(t, fitContent("", 10, 3))
}
