package refresh

import (
	"pullrefresh/internal/scroll"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the visible phase of a refresh control.
type State int

const (
	StatePulling State = iota
	StateReleaseToRefresh
	StateRefreshing
	StateNoMoreData
)

func (s State) String() string {
	switch s {
	case StatePulling:
		return "pulling"
	case StateReleaseToRefresh:
		return "release"
	case StateRefreshing:
		return "refreshing"
	case StateNoMoreData:
		return "no more data"
	default:
		return "unknown"
	}
}

// Animator renders refresh feedback.
type Animator interface {
	// View returns the rendered surface.
	View() string
	// Insets position the surface within the component bounds.
	Insets() scroll.Insets
	StartAnimating()
	StopAnimating()
	Refresh(state State)
	// SetProgress receives the pull progress in [0, 1].
	SetProgress(progress float64)
}

// Ticker is implemented by animators that need frame ticks from the
// bubbletea loop.
type Ticker interface {
	Tick() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
}
