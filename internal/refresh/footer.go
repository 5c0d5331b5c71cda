package refresh

import "pullrefresh/internal/scroll"

// Footer triggers a load when the host is scrolled to within distance rows
// of the end of its content.
type Footer struct {
	distance float64
	state    State
	noMore   bool
	paused   []*Component
	lastY    float64
}

// NewFooter creates a footer trigger.
func NewFooter(distance float64) *Footer {
	return &Footer{distance: max(distance, 0)}
}

// PauseWhile keeps the footer from triggering while other is loading.
func (f *Footer) PauseWhile(other *Component) *Footer {
	f.paused = append(f.paused, other)
	return f
}

// State returns the current footer phase.
func (f *Footer) State() State {
	return f.state
}

// NoMoreData reports whether the footer has been told the source is exhausted.
func (f *Footer) NoMoreData() bool {
	return f.noMore
}

// NoticeNoMoreData stops the footer from triggering until reset.
func (f *Footer) NoticeNoMoreData(c *Component) {
	f.noMore = true
	if !c.Loading() {
		f.setState(c, StateNoMoreData)
	}
}

// ResetNoMoreData re-arms the footer.
func (f *Footer) ResetNoMoreData(c *Component) {
	f.noMore = false
	if !c.Loading() {
		f.setState(c, StatePulling)
	}
}

func (f *Footer) setState(c *Component, s State) {
	if f.state == s {
		return
	}
	f.state = s
	if a := c.Animator(); a != nil {
		a.Refresh(s)
	}
}

func (f *Footer) SizeChanged(*Component, scroll.Size) {}

func (f *Footer) OffsetChanged(c *Component, offset scroll.Offset) {
	host := c.Scroller()
	if host == nil {
		return
	}
	// Only movement toward the end counts, so settling back up after a
	// load never re-triggers.
	prev := f.lastY
	f.lastY = offset.Y
	if offset.Y <= prev || c.Loading() || f.noMore {
		return
	}
	for _, other := range f.paused {
		if other.Loading() {
			return
		}
	}

	content := host.ContentSize().Height
	viewport := host.ViewportSize().Height
	if content <= viewport {
		return
	}
	if offset.Y+viewport >= content-f.distance {
		c.SetLoading(true)
	}
}

// Started reserves rows below the content for the footer and reveals them.
func (f *Footer) Started(c *Component) {
	f.setState(c, StateRefreshing)
	host := c.Scroller()
	if host == nil {
		return
	}
	in := host.Insets()
	in.Bottom = float64(c.Height())
	host.SetInsets(in)
	end := max(0, host.ContentSize().Height-host.ViewportSize().Height)
	host.ScrollTo(end+in.Bottom, true)
}

// Stopped releases the footer rows.
func (f *Footer) Stopped(c *Component) {
	if f.noMore {
		f.setState(c, StateNoMoreData)
	} else {
		f.setState(c, StatePulling)
	}
	host := c.Scroller()
	if host == nil {
		return
	}
	in := host.Insets()
	in.Bottom = 0
	host.SetInsets(in)
	end := max(0, host.ContentSize().Height-host.ViewportSize().Height)
	host.ScrollTo(min(host.Offset().Y, end), true)
}
