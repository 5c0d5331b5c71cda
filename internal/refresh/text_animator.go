package refresh

import (
	"fmt"
	"strings"
	"time"

	"pullrefresh/internal/scroll"
	"pullrefresh/internal/util"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Titles are the labels shown for each state.
type Titles struct {
	Pulling string
	Release string
	Loading string
	NoMore  string
}

// DefaultTitles returns the stock labels.
func DefaultTitles() Titles {
	return Titles{
		Pulling: "Pull to refresh",
		Release: "Release to refresh",
		Loading: "Loading...",
		NoMore:  "No more data",
	}
}

var progressGlyphs = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	releaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")).Faint(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
)

// AnimatorOption configures a TextAnimator.
type AnimatorOption func(*TextAnimator)

// WithTitles overrides the labels. Empty fields keep their defaults.
func WithTitles(t Titles) AnimatorOption {
	return func(a *TextAnimator) {
		if t.Pulling != "" {
			a.titles.Pulling = t.Pulling
		}
		if t.Release != "" {
			a.titles.Release = t.Release
		}
		if t.Loading != "" {
			a.titles.Loading = t.Loading
		}
		if t.NoMore != "" {
			a.titles.NoMore = t.NoMore
		}
	}
}

// WithSpinner selects the spinner frames used while refreshing.
func WithSpinner(s spinner.Spinner) AnimatorOption {
	return func(a *TextAnimator) {
		a.spinner.Spinner = s
	}
}

// WithLastUpdated shows how long ago the last refresh finished.
func WithLastUpdated() AnimatorOption {
	return func(a *TextAnimator) {
		a.showUpdated = true
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) AnimatorOption {
	return func(a *TextAnimator) {
		a.now = now
	}
}

// WithInsets positions the surface within the component.
func WithInsets(in scroll.Insets) AnimatorOption {
	return func(a *TextAnimator) {
		a.insets = in
	}
}

// TextAnimator is the default animator: a state label, a progress glyph
// while pulling and a spinner while refreshing.
type TextAnimator struct {
	spinner     spinner.Model
	titles      Titles
	insets      scroll.Insets
	state       State
	progress    float64
	animating   bool
	showUpdated bool
	updated     time.Time
	now         func() time.Time
}

// NewTextAnimator creates a TextAnimator.
func NewTextAnimator(opts ...AnimatorOption) *TextAnimator {
	a := &TextAnimator{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		titles:  DefaultTitles(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *TextAnimator) Insets() scroll.Insets {
	return a.insets
}

func (a *TextAnimator) StartAnimating() {
	a.animating = true
}

// StopAnimating ends the spinner and stamps the refresh completion time.
func (a *TextAnimator) StopAnimating() {
	a.animating = false
	a.updated = a.now()
}

func (a *TextAnimator) Refresh(state State) {
	a.state = state
}

func (a *TextAnimator) SetProgress(progress float64) {
	a.progress = util.Clamp(progress, 0, 1)
}

// State returns the last state passed to Refresh.
func (a *TextAnimator) State() State {
	return a.state
}

// Progress returns the last pull progress.
func (a *TextAnimator) Progress() float64 {
	return a.progress
}

// Tick starts the spinner frame loop.
func (a *TextAnimator) Tick() tea.Cmd {
	return a.spinner.Tick
}

// Update advances the spinner. Once animation stops, ticks are dropped
// and the frame loop ends.
func (a *TextAnimator) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); !ok || !a.animating {
		return nil
	}
	var cmd tea.Cmd
	a.spinner, cmd = a.spinner.Update(msg)
	return cmd
}

func (a *TextAnimator) View() string {
	var line string
	switch {
	case a.animating || a.state == StateRefreshing:
		line = a.spinner.View() + " " + titleStyle.Render(a.titles.Loading)
	case a.state == StateNoMoreData:
		line = mutedStyle.Render(a.titles.NoMore)
	case a.state == StateReleaseToRefresh:
		line = releaseStyle.Render("↑ " + a.titles.Release)
	default:
		line = titleStyle.Render(fmt.Sprintf("%s ↓ %s", a.glyph(), a.titles.Pulling))
	}

	if !a.showUpdated || a.updated.IsZero() || a.state == StateNoMoreData {
		return line
	}
	updated := "updated " + humanize.RelTime(a.updated, a.now(), "ago", "from now")
	return strings.Join([]string{line, mutedStyle.Render(updated)}, "\n")
}

func (a *TextAnimator) glyph() string {
	idx := int(a.progress * float64(len(progressGlyphs)-1))
	return progressGlyphs[util.Clamp(idx, 0, len(progressGlyphs)-1)]
}
