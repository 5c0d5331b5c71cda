package tui

// Layout splits the terminal into the bordered pane and the rows below it.
type Layout struct {
	Width      int
	Height     int
	BodyWidth  int
	BodyHeight int
}

const (
	panelBorder = 2 // one cell each side
	chromeRows  = 2 // status + help

	minBodyWidth  = 10
	minBodyHeight = 3
)

func NewLayout(width, height int) Layout {
	return Layout{
		Width:      width,
		Height:     height,
		BodyWidth:  max(width-panelBorder, minBodyWidth),
		BodyHeight: max(height-panelBorder-chromeRows, minBodyHeight),
	}
}

// PanelWidth is the outer width of the bordered pane.
func (l Layout) PanelWidth() int {
	return l.BodyWidth + panelBorder
}

// PanelHeight is the outer height of the bordered pane.
func (l Layout) PanelHeight() int {
	return l.BodyHeight + panelBorder
}
