// Package refresh implements a pull-to-refresh control for scroll containers.
//
// A Component observes its host's offset and content size, hands each change
// to a Trigger that decides when a refresh starts, and keeps its loading and
// animating flags in step while driving an Animator.
package refresh

import (
	"reflect"

	"pullrefresh/internal/scroll"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Handler is called once every time a refresh starts.
type Handler func()

// Observable is a host container that reports scroll changes.
type Observable interface {
	OnPositionChanged(fn func(scroll.Offset)) *scroll.Subscription
	OnSizeChanged(fn func(scroll.Size)) *scroll.Subscription
}

// Scroller is a host a Trigger can move and inset.
type Scroller interface {
	Observable
	Offset() scroll.Offset
	ContentSize() scroll.Size
	ViewportSize() scroll.Size
	Insets() scroll.Insets
	SetInsets(in scroll.Insets)
	Dragging() bool
	ScrollTo(y float64, animated bool)
}

// Trigger turns host changes into refresh transitions.
type Trigger interface {
	SizeChanged(c *Component, size scroll.Size)
	OffsetChanged(c *Component, offset scroll.Offset)
	// Started runs after the component enters the loading state,
	// before the handler is called.
	Started(c *Component)
	// Stopped runs after the component leaves the loading state.
	Stopped(c *Component)
}

// Frame is the animator surface position within the component, in cells.
type Frame struct {
	X, Y          int
	Width, Height int
}

// Option configures a Component.
type Option func(*Component)

// WithAnimator replaces the default animator. A nil animator leaves the
// component without a visible surface.
func WithAnimator(a Animator) Option {
	return func(c *Component) {
		c.animator = a
	}
}

// WithHeight sets the component height in rows.
func WithHeight(rows int) Option {
	return func(c *Component) {
		c.height = max(rows, 0)
	}
}

// WithWidth sets the component width in columns.
func WithWidth(cols int) Option {
	return func(c *Component) {
		c.width = max(cols, 0)
	}
}

const defaultHeight = 2

// Component is the attachable refresh control.
type Component struct {
	handler  Handler
	trigger  Trigger
	animator Animator

	width  int
	height int
	frame  Frame

	host      Observable
	subs      []*scroll.Subscription
	installed bool

	loading   bool
	animating bool
	disabled  bool
	hidden    bool

	built bool
}

// New creates a component that calls handler when trigger starts a refresh.
// A nil trigger yields a component that only refreshes through SetLoading.
func New(handler Handler, trigger Trigger, opts ...Option) *Component {
	c := &Component{
		handler:  handler,
		trigger:  trigger,
		animator: NewTextAnimator(),
		height:   defaultHeight,
		built:    true,
	}
	if c.trigger == nil {
		c.trigger = nopTrigger{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Component) mustBeBuilt() {
	if c == nil || !c.built {
		panic("refresh: Component must be created with refresh.New")
	}
}

// Attach subscribes to host, first detaching from any previous host.
// A host that is not Observable, or is a nil pointer, leaves the component
// inert.
func (c *Component) Attach(host any) {
	c.mustBeBuilt()
	c.Detach()

	obs, ok := host.(Observable)
	if !ok || isNil(obs) {
		return
	}
	c.host = obs
	c.install()
	c.subs = append(c.subs,
		obs.OnSizeChanged(c.sizeChanged),
		obs.OnPositionChanged(c.offsetChanged),
	)
}

// Detach removes every subscription on the current host.
// Detaching an unattached component does nothing.
func (c *Component) Detach() {
	for _, sub := range c.subs {
		sub.Cancel()
	}
	c.subs = nil
	c.host = nil
}

// Attached reports whether the component currently observes a host.
func (c *Component) Attached() bool {
	return c.host != nil
}

// AttachedTo reports whether host is the one currently observed.
func (c *Component) AttachedTo(host any) bool {
	return c.host != nil && host == any(c.host)
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Scroller returns the host when it can be scrolled, or nil.
func (c *Component) Scroller() Scroller {
	s, _ := c.host.(Scroller)
	return s
}

func (c *Component) install() {
	if c.animator == nil || c.installed {
		return
	}
	c.installed = true
	c.layout()
}

func (c *Component) layout() {
	if !c.installed {
		return
	}
	in := c.animator.Insets()
	c.frame = Frame{
		X:      int(in.Left),
		Y:      int(in.Top),
		Width:  max(c.width-int(in.Left)-int(in.Right), 0),
		Height: max(c.height-int(in.Top)-int(in.Bottom), 0),
	}
}

func (c *Component) interactive() bool {
	return !c.disabled && !c.hidden
}

func (c *Component) sizeChanged(size scroll.Size) {
	if !c.interactive() {
		return
	}
	c.trigger.SizeChanged(c, size)
}

func (c *Component) offsetChanged(offset scroll.Offset) {
	if !c.interactive() {
		return
	}
	c.trigger.OffsetChanged(c, offset)
}

// Loading reports whether a refresh cycle is in progress.
func (c *Component) Loading() bool {
	return c.loading
}

// Animating reports whether the refresh animation is running.
func (c *Component) Animating() bool {
	return c.animating
}

// SetLoading starts or ends a refresh cycle. Setting the current value
// does nothing.
func (c *Component) SetLoading(loading bool) {
	c.mustBeBuilt()
	if loading == c.loading {
		return
	}
	c.loading = loading
	if loading {
		c.startAnimating()
	} else {
		c.stopAnimating()
	}
}

func (c *Component) startAnimating() {
	c.animating = true
	if c.animator != nil {
		c.animator.StartAnimating()
	}
	c.trigger.Started(c)
	if c.handler != nil {
		c.handler()
	}
}

func (c *Component) stopAnimating() {
	c.animating = false
	if c.animator != nil {
		c.animator.StopAnimating()
	}
	c.trigger.Stopped(c)
}

// Enabled reports whether the component reacts to host changes.
func (c *Component) Enabled() bool {
	return !c.disabled
}

// SetEnabled turns delivery of host changes on or off.
func (c *Component) SetEnabled(enabled bool) {
	c.disabled = !enabled
}

// Hidden reports whether the component is hidden.
func (c *Component) Hidden() bool {
	return c.hidden
}

// SetHidden hides the component. A hidden component ignores host changes
// and renders nothing.
func (c *Component) SetHidden(hidden bool) {
	c.hidden = hidden
}

// Animator returns the installed animator, or nil.
func (c *Component) Animator() Animator {
	return c.animator
}

// Height is the component height in rows.
func (c *Component) Height() int {
	return c.height
}

// SetWidth resizes the component and re-lays out the animator surface.
func (c *Component) SetWidth(cols int) {
	c.width = max(cols, 0)
	c.layout()
}

// Frame returns the animator surface frame. It is zero until the
// component has been attached with an animator.
func (c *Component) Frame() Frame {
	return c.frame
}

// Tick returns the command that starts the animator's frame loop.
// It is nil when the animator does not tick or the component is idle.
func (c *Component) Tick() tea.Cmd {
	t, ok := c.animator.(Ticker)
	if !ok || !c.animating {
		return nil
	}
	return t.Tick()
}

// Update forwards msg to a ticking animator.
func (c *Component) Update(msg tea.Msg) tea.Cmd {
	t, ok := c.animator.(Ticker)
	if !ok {
		return nil
	}
	return t.Update(msg)
}

// View renders the animator surface inside its frame.
func (c *Component) View() string {
	if c.hidden || !c.installed || c.frame.Width == 0 || c.frame.Height == 0 {
		return ""
	}
	placed := lipgloss.Place(c.frame.Width, c.frame.Height, lipgloss.Center, lipgloss.Center, c.animator.View())
	return lipgloss.NewStyle().
		PaddingLeft(c.frame.X).
		PaddingTop(c.frame.Y).
		Render(placed)
}

type nopTrigger struct{}

func (nopTrigger) SizeChanged(*Component, scroll.Size)     {}
func (nopTrigger) OffsetChanged(*Component, scroll.Offset) {}
func (nopTrigger) Started(*Component)                      {}
func (nopTrigger) Stopped(*Component)                      {}
