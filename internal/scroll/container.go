// Package scroll models a vertically scrolling terminal pane. It tracks the
// scroll offset, content insets and content size, and notifies registered
// listeners whenever the offset or the content size changes.
package scroll

import (
	"math"
	"slices"

	"pullrefresh/internal/util"

	"github.com/charmbracelet/harmonica"
)

const (
	// Spring tuned for a short settle without overshooting into the content.
	springFrequency = 9.0
	springDamping   = 1.0

	settleEpsilon = 0.01

	minResistance = 0.12
)

// Offset is the scroll position in rows (Y) and columns (X).
// Negative Y means the pane is pulled down past its top edge.
type Offset struct {
	X float64
	Y float64
}

// Size is a width/height pair in cells.
type Size struct {
	Width  float64
	Height float64
}

// Insets extend the scrollable area beyond the content edges.
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// Mountable is a control that can be hosted by a Container.
type Mountable interface {
	Attach(host any)
	Detach()
	// AttachedTo reports whether host is the one currently observed.
	AttachedTo(host any) bool
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Container is a scrollable pane of text lines.
// It is not safe for concurrent use; drive it from the UI loop.
type Container struct {
	lines    []string
	viewport Size
	offset   float64
	insets   Insets
	dragging bool

	settling bool
	target   float64
	velocity float64
	spring   harmonica.Spring

	position []listener[Offset]
	size     []listener[Size]
	nextID   int

	mounted []Mountable
}

// New creates an empty container with the given viewport dimensions.
func New(width, height int) *Container {
	return &Container{
		viewport: Size{Width: float64(max(width, 0)), Height: float64(max(height, 0))},
		spring:   harmonica.NewSpring(harmonica.FPS(60), springFrequency, springDamping),
	}
}

// OnPositionChanged registers fn for offset changes. fn is called once
// immediately with the current offset.
func (c *Container) OnPositionChanged(fn func(Offset)) *Subscription {
	id := c.register()
	c.position = append(c.position, listener[Offset]{id: id, fn: fn})
	fn(c.Offset())
	return &Subscription{cancel: func() {
		c.position = slices.DeleteFunc(c.position, func(l listener[Offset]) bool { return l.id == id })
	}}
}

// OnSizeChanged registers fn for content size changes. fn is called once
// immediately with the current content size.
func (c *Container) OnSizeChanged(fn func(Size)) *Subscription {
	id := c.register()
	c.size = append(c.size, listener[Size]{id: id, fn: fn})
	fn(c.ContentSize())
	return &Subscription{cancel: func() {
		c.size = slices.DeleteFunc(c.size, func(l listener[Size]) bool { return l.id == id })
	}}
}

func (c *Container) register() int {
	id := c.nextID
	c.nextID++
	return id
}

// Observers returns the number of live position and size listeners.
func (c *Container) Observers() int {
	return len(c.position) + len(c.size)
}

func (c *Container) notifyPosition() {
	off := c.Offset()
	// Listeners may cancel themselves while being notified.
	for _, l := range slices.Clone(c.position) {
		if c.positionLive(l.id) {
			l.fn(off)
		}
	}
}

func (c *Container) notifySize() {
	size := c.ContentSize()
	for _, l := range slices.Clone(c.size) {
		if c.sizeLive(l.id) {
			l.fn(size)
		}
	}
}

// An earlier listener may cancel a later one mid-dispatch; it must not be
// called after that.
func (c *Container) positionLive(id int) bool {
	return slices.ContainsFunc(c.position, func(l listener[Offset]) bool { return l.id == id })
}

func (c *Container) sizeLive(id int) bool {
	return slices.ContainsFunc(c.size, func(l listener[Size]) bool { return l.id == id })
}

// Lines returns the content lines.
func (c *Container) Lines() []string {
	return c.lines
}

// SetContent replaces the content. Size listeners fire when the content
// size changes.
func (c *Container) SetContent(lines []string) {
	before := c.ContentSize()
	c.lines = lines
	if c.ContentSize() != before {
		c.notifySize()
	}
	if !c.dragging && !c.settling {
		c.settle()
	}
}

// SetViewport resizes the visible area.
func (c *Container) SetViewport(width, height int) {
	before := c.ContentSize()
	c.viewport = Size{Width: float64(max(width, 0)), Height: float64(max(height, 0))}
	if c.ContentSize() != before {
		c.notifySize()
	}
}

// ContentSize is the content's extent: the viewport width by the line count.
func (c *Container) ContentSize() Size {
	return Size{Width: c.viewport.Width, Height: float64(len(c.lines))}
}

// ViewportSize is the visible area.
func (c *Container) ViewportSize() Size {
	return c.viewport
}

// Offset returns the current scroll offset.
func (c *Container) Offset() Offset {
	return Offset{Y: c.offset}
}

// Insets returns the content insets.
func (c *Container) Insets() Insets {
	return c.insets
}

// SetInsets updates the content insets. The offset is not moved; callers
// scroll explicitly when the rest position changes.
func (c *Container) SetInsets(in Insets) {
	c.insets = in
}

// Dragging reports whether a user drag is in progress.
func (c *Container) Dragging() bool {
	return c.dragging
}

// Animating reports whether the offset is still springing toward a target.
func (c *Container) Animating() bool {
	return c.settling
}

// MinOffset is the smallest rest offset.
func (c *Container) MinOffset() float64 {
	return -c.insets.Top
}

// MaxOffset is the largest rest offset.
func (c *Container) MaxOffset() float64 {
	return max(0, float64(len(c.lines))-c.viewport.Height) + c.insets.Bottom
}

// AtTop reports whether the offset is at or above the top rest position.
func (c *Container) AtTop() bool {
	return c.offset <= c.MinOffset()
}

// AtBottom reports whether the offset is at or below the bottom rest position.
func (c *Container) AtBottom() bool {
	return c.offset >= c.MaxOffset()
}

func (c *Container) setOffset(y float64) {
	if y == c.offset {
		return
	}
	c.offset = y
	c.notifyPosition()
}

// BeginDrag marks the start of a user drag and stops any settle animation.
func (c *Container) BeginDrag() {
	c.dragging = true
	c.settling = false
	c.velocity = 0
}

// EndDrag ends a user drag. Listeners see the release as a position
// notification with Dragging false, then the offset settles back inside
// the rest bounds unless a listener already scrolled somewhere.
func (c *Container) EndDrag() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.notifyPosition()
	if !c.settling {
		c.settle()
	}
}

// Drag moves the offset by delta rows. Past either edge the movement meets
// increasing resistance, and the total overscroll is bounded.
func (c *Container) Drag(delta float64) {
	lo, hi := c.MinOffset(), c.MaxOffset()
	if (c.offset <= lo && delta < 0) || (c.offset >= hi && delta > 0) {
		overscroll := 0.0
		if c.offset < lo {
			overscroll = lo - c.offset
		} else if c.offset > hi {
			overscroll = c.offset - hi
		}
		fraction := overscroll / max(c.viewport.Height, 1)
		delta *= max(1.0/(1.0+2.4*fraction), minResistance)
	}
	limit := c.overscrollLimit()
	c.setOffset(util.Clamp(c.offset+delta, lo-limit, hi+limit))
}

func (c *Container) overscrollLimit() float64 {
	return util.Clamp(math.Round(c.viewport.Height*0.5), 4, 20)
}

// ScrollBy moves the offset by delta rows within the rest bounds.
func (c *Container) ScrollBy(delta float64) {
	c.ScrollTo(c.offset+delta, false)
}

// ScrollTo moves to y, clamped to the rest bounds when not animated.
// An animated scroll springs toward y on successive Advance calls.
func (c *Container) ScrollTo(y float64, animated bool) {
	if !animated {
		c.settling = false
		c.velocity = 0
		c.setOffset(util.Clamp(y, c.MinOffset(), c.MaxOffset()))
		return
	}
	c.target = y
	c.settling = y != c.offset
}

// Advance steps the settle animation by one frame and reports whether
// more frames are needed.
func (c *Container) Advance() bool {
	if !c.settling {
		return false
	}
	pos, vel := c.spring.Update(c.offset, c.velocity, c.target)
	if math.Abs(pos-c.target) < settleEpsilon && math.Abs(vel) < settleEpsilon {
		pos, vel = c.target, 0
		c.settling = false
	}
	c.velocity = vel
	c.setOffset(pos)
	return c.settling
}

func (c *Container) settle() {
	rest := util.Clamp(c.offset, c.MinOffset(), c.MaxOffset())
	if rest != c.offset {
		c.ScrollTo(rest, true)
	}
}

// Overscroll returns how many whole rows are exposed above the content
// and below it.
func (c *Container) Overscroll() (top, bottom int) {
	if c.offset < 0 {
		top = int(math.Ceil(-c.offset))
	}
	end := max(0, float64(len(c.lines))-c.viewport.Height)
	if c.offset > end {
		bottom = int(math.Ceil(c.offset - end))
	}
	return top, bottom
}

// FirstLine is the index of the topmost visible content line.
func (c *Container) FirstLine() int {
	return max(0, int(math.Floor(c.offset)))
}

// Mount attaches m to this container. Mounting a control that is already
// attached here is a no-op.
func (c *Container) Mount(m Mountable) {
	if !slices.Contains(c.mounted, m) {
		c.mounted = append(c.mounted, m)
	} else if m.AttachedTo(c) {
		return
	}
	m.Attach(c)
}

// Unmount forgets m. It is detached only if it still observes this
// container; a control since moved to another container keeps that host.
func (c *Container) Unmount(m Mountable) {
	idx := slices.Index(c.mounted, m)
	if idx < 0 {
		return
	}
	c.mounted = slices.Delete(c.mounted, idx, idx+1)
	if m.AttachedTo(c) {
		m.Detach()
	}
}

// Close detaches every control still attached here, most recent first, and
// drops any remaining listeners. The container must not be used afterwards.
func (c *Container) Close() {
	for i := len(c.mounted) - 1; i >= 0; i-- {
		if m := c.mounted[i]; m.AttachedTo(c) {
			m.Detach()
		}
	}
	c.mounted = nil
	c.position = nil
	c.size = nil
}
