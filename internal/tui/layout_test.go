package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLayout(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		height     int
		bodyWidth  int
		bodyHeight int
	}{
		{name: "typical terminal", width: 80, height: 24, bodyWidth: 78, bodyHeight: 20},
		{name: "wide terminal", width: 200, height: 50, bodyWidth: 198, bodyHeight: 46},
		{name: "tiny terminal clamps", width: 5, height: 4, bodyWidth: minBodyWidth, bodyHeight: minBodyHeight},
		{name: "zero size clamps", width: 0, height: 0, bodyWidth: minBodyWidth, bodyHeight: minBodyHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.width, tt.height)

			assert.Equal(t, tt.width, l.Width)
			assert.Equal(t, tt.height, l.Height)
			assert.Equal(t, tt.bodyWidth, l.BodyWidth)
			assert.Equal(t, tt.bodyHeight, l.BodyHeight)
			assert.Equal(t, tt.bodyWidth+2, l.PanelWidth())
			assert.Equal(t, tt.bodyHeight+2, l.PanelHeight())
		})
	}
}
