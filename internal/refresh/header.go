package refresh

import (
	"time"

	"pullrefresh/internal/rule"
	"pullrefresh/internal/scroll"
	"pullrefresh/internal/util"
)

// Header triggers a refresh when the host is pulled down past a threshold
// and released.
type Header struct {
	threshold   float64
	rule        *rule.Rule
	state       State
	lastRefresh time.Time
	now         func() time.Time
}

// HeaderOption configures a Header.
type HeaderOption func(*Header)

// WithRule replaces the default "pull >= threshold" test.
func WithRule(r *rule.Rule) HeaderOption {
	return func(h *Header) {
		h.rule = r
	}
}

// WithHeaderClock replaces time.Now for the last-refresh stamp.
func WithHeaderClock(now func() time.Time) HeaderOption {
	return func(h *Header) {
		h.now = now
	}
}

// NewHeader creates a header trigger that fires after a pull of threshold rows.
func NewHeader(threshold float64, opts ...HeaderOption) *Header {
	h := &Header{
		threshold: threshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// State returns the current header phase.
func (h *Header) State() State {
	return h.state
}

// Threshold returns the trigger distance in rows.
func (h *Header) Threshold() float64 {
	return h.threshold
}

// LastRefresh is when the last refresh cycle ended. Zero before the first.
func (h *Header) LastRefresh() time.Time {
	return h.lastRefresh
}

func (h *Header) setState(c *Component, s State) {
	if h.state == s {
		return
	}
	h.state = s
	if a := c.Animator(); a != nil {
		a.Refresh(s)
	}
}

func (h *Header) SizeChanged(*Component, scroll.Size) {}

func (h *Header) OffsetChanged(c *Component, offset scroll.Offset) {
	host := c.Scroller()
	if host == nil || c.Loading() {
		return
	}

	pull := max(-offset.Y, 0)
	env := rule.Env{
		Pull:      pull,
		Threshold: h.threshold,
		Progress:  util.Ratio(pull, h.threshold),
		Dragging:  host.Dragging(),
		Viewport:  host.ViewportSize().Height,
		Content:   host.ContentSize().Height,
	}
	if a := c.Animator(); a != nil {
		a.SetProgress(env.Progress)
	}

	if env.Dragging {
		if h.triggered(env) {
			h.setState(c, StateReleaseToRefresh)
		} else {
			h.setState(c, StatePulling)
		}
		return
	}

	if h.state == StateReleaseToRefresh {
		c.SetLoading(true)
	}
}

func (h *Header) triggered(env rule.Env) bool {
	if h.rule != nil {
		return h.rule.Eval(env)
	}
	return env.Pull >= env.Threshold
}

// Started holds the header open with a top inset while loading.
func (h *Header) Started(c *Component) {
	h.setState(c, StateRefreshing)
	host := c.Scroller()
	if host == nil {
		return
	}
	in := host.Insets()
	in.Top = float64(c.Height())
	host.SetInsets(in)
	host.ScrollTo(-in.Top, true)
}

// Stopped removes the top inset and springs the host back to its top.
func (h *Header) Stopped(c *Component) {
	h.lastRefresh = h.now()
	h.setState(c, StatePulling)
	if a := c.Animator(); a != nil {
		a.SetProgress(0)
	}
	host := c.Scroller()
	if host == nil {
		return
	}
	in := host.Insets()
	in.Top = 0
	host.SetInsets(in)
	host.ScrollTo(max(host.Offset().Y, 0), true)
}
