package scroll

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func settle(t *testing.T, c *Container) {
	t.Helper()
	for i := 0; c.Advance(); i++ {
		require.Less(t, i, 1000, "settle animation did not converge")
	}
}

func TestOnPositionChanged_DeliversCurrentValueImmediately(t *testing.T) {
	c := New(40, 10)
	c.SetContent(makeLines(30))
	c.ScrollTo(5, false)

	var got []Offset
	sub := c.OnPositionChanged(func(o Offset) { got = append(got, o) })

	require.Len(t, got, 1)
	assert.InDelta(t, 5, got[0].Y, 1e-9)
	assert.True(t, sub.Active())

	c.ScrollBy(2)
	require.Len(t, got, 2)
	assert.InDelta(t, 7, got[1].Y, 1e-9)
}

func TestOnSizeChanged_FiresOnlyWhenSizeChanges(t *testing.T) {
	c := New(40, 10)

	var got []Size
	c.OnSizeChanged(func(s Size) { got = append(got, s) })
	require.Len(t, got, 1)
	assert.Equal(t, Size{Width: 40, Height: 0}, got[0])

	c.SetContent(makeLines(3))
	c.SetContent([]string{"a", "b", "c"})
	c.SetViewport(40, 20)
	c.SetViewport(60, 20)

	require.Len(t, got, 3)
	assert.Equal(t, Size{Width: 40, Height: 3}, got[1])
	assert.Equal(t, Size{Width: 60, Height: 3}, got[2])
}

func TestSubscription_CancelIsIdempotent(t *testing.T) {
	c := New(40, 10)
	calls := 0
	sub := c.OnPositionChanged(func(Offset) { calls++ })
	other := c.OnPositionChanged(func(Offset) {})

	sub.Cancel()
	sub.Cancel()
	var nilSub *Subscription
	nilSub.Cancel()

	assert.False(t, sub.Active())
	assert.True(t, other.Active())
	assert.Equal(t, 1, c.Observers())

	c.SetContent(makeLines(30))
	c.ScrollBy(3)
	assert.Equal(t, 1, calls, "cancelled listener must not be notified")
}

func TestSubscription_CancelOnlyRemovesOwnListener(t *testing.T) {
	c := New(40, 10)
	c.SetContent(makeLines(30))

	var first, second int
	a := c.OnPositionChanged(func(Offset) { first++ })
	c.OnPositionChanged(func(Offset) { second++ })

	a.Cancel()
	c.ScrollBy(1)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestSubscription_CancelledDuringDispatchIsSkipped(t *testing.T) {
	c := New(40, 10)
	c.SetContent(makeLines(30))

	var later *Subscription
	var delivered []Offset
	c.OnPositionChanged(func(o Offset) {
		if o.Y > 0 {
			later.Cancel()
		}
	})
	later = c.OnPositionChanged(func(o Offset) { delivered = append(delivered, o) })

	c.ScrollBy(3)

	assert.Equal(t, []Offset{{}}, delivered, "only the registration call arrives")
	assert.Equal(t, 1, c.Observers())
}

func TestSubscription_SizeCancelledDuringDispatchIsSkipped(t *testing.T) {
	c := New(40, 10)

	var later *Subscription
	calls := 0
	c.OnSizeChanged(func(s Size) {
		if s.Height > 0 {
			later.Cancel()
		}
	})
	later = c.OnSizeChanged(func(Size) { calls++ })

	c.SetContent(makeLines(5))

	assert.Equal(t, 1, calls)
}

func TestDrag_ResistsPastTopEdge(t *testing.T) {
	c := New(40, 20)
	c.SetContent(makeLines(50))

	c.BeginDrag()
	c.Drag(-2)
	firstStep := -c.Offset().Y
	c.Drag(-2)
	secondStep := -c.Offset().Y - firstStep

	assert.InDelta(t, 2, firstStep, 1e-9, "first step starts at the edge with no overscroll")
	assert.Less(t, secondStep, 2.0, "further pulling meets resistance")
	assert.True(t, c.Dragging())
}

func TestDrag_OverscrollIsBounded(t *testing.T) {
	c := New(40, 20)
	c.SetContent(makeLines(50))

	c.BeginDrag()
	for range 500 {
		c.Drag(-5)
	}

	assert.GreaterOrEqual(t, c.Offset().Y, -c.overscrollLimit())
}

func TestEndDrag_NotifiesReleaseThenSettles(t *testing.T) {
	c := New(40, 20)
	c.SetContent(makeLines(50))

	var released []bool
	c.OnPositionChanged(func(Offset) { released = append(released, !c.Dragging()) })

	c.BeginDrag()
	c.Drag(-3)
	c.EndDrag()

	require.GreaterOrEqual(t, len(released), 3)
	assert.False(t, released[1], "drag notification happens while dragging")
	assert.True(t, released[2], "release is observed with Dragging false")
	assert.True(t, c.Animating())

	settle(t, c)
	assert.InDelta(t, 0, c.Offset().Y, 1e-9)
	assert.False(t, c.Animating())
}

func TestEndDrag_KeepsListenerScrollTarget(t *testing.T) {
	c := New(40, 20)
	c.SetContent(makeLines(50))
	c.OnPositionChanged(func(o Offset) {
		if !c.Dragging() && o.Y < -2 && c.Insets().Top == 0 {
			c.SetInsets(Insets{Top: 2})
			c.ScrollTo(-2, true)
		}
	})

	c.BeginDrag()
	c.Drag(-4)
	c.EndDrag()
	settle(t, c)

	assert.InDelta(t, -2, c.Offset().Y, 1e-9)
}

func TestEndDrag_WithoutDragIsNoop(t *testing.T) {
	c := New(40, 20)
	calls := 0
	c.OnPositionChanged(func(Offset) { calls++ })

	c.EndDrag()

	assert.Equal(t, 1, calls)
}

func TestScrollTo_ClampsToRestBounds(t *testing.T) {
	c := New(40, 10)
	c.SetContent(makeLines(25))

	c.ScrollTo(100, false)
	assert.InDelta(t, 15, c.Offset().Y, 1e-9)
	assert.True(t, c.AtBottom())

	c.ScrollTo(-10, false)
	assert.InDelta(t, 0, c.Offset().Y, 1e-9)
	assert.True(t, c.AtTop())

	c.SetInsets(Insets{Top: 3, Bottom: 2})
	c.ScrollTo(-10, false)
	assert.InDelta(t, -3, c.Offset().Y, 1e-9)
	c.ScrollTo(100, false)
	assert.InDelta(t, 17, c.Offset().Y, 1e-9)
}

func TestOverscroll(t *testing.T) {
	c := New(40, 10)
	c.SetContent(makeLines(12))

	c.SetInsets(Insets{Top: 3})
	c.ScrollTo(-3, false)
	top, bottom := c.Overscroll()
	assert.Equal(t, 3, top)
	assert.Equal(t, 0, bottom)
	assert.Equal(t, 0, c.FirstLine())

	c.SetInsets(Insets{Bottom: 2})
	c.ScrollTo(4, false)
	top, bottom = c.Overscroll()
	assert.Equal(t, 0, top)
	assert.Equal(t, 2, bottom)
	assert.Equal(t, 4, c.FirstLine())
}

type recordingMount struct {
	host     any
	attached []any
	detached int
}

func (r *recordingMount) Attach(host any) {
	r.host = host
	r.attached = append(r.attached, host)
}

func (r *recordingMount) Detach() {
	r.host = nil
	r.detached++
}

func (r *recordingMount) AttachedTo(host any) bool { return r.host != nil && r.host == host }

func TestMountUnmountClose(t *testing.T) {
	c := New(40, 10)
	a, b := &recordingMount{}, &recordingMount{}

	c.Mount(a)
	c.Mount(a)
	c.Mount(b)
	require.Len(t, a.attached, 1)
	assert.Same(t, c, a.attached[0])

	c.Unmount(a)
	c.Unmount(a)
	assert.Equal(t, 1, a.detached)

	c.Close()
	assert.Equal(t, 1, b.detached)
	assert.Equal(t, 0, c.Observers())
}

func TestClose_LeavesControlMovedToAnotherContainer(t *testing.T) {
	first, second := New(40, 10), New(40, 10)
	m := &recordingMount{}

	first.Mount(m)
	second.Mount(m)
	first.Close()
	first.Unmount(m)

	assert.True(t, m.AttachedTo(second))
	assert.Equal(t, 0, m.detached)

	first = New(40, 10)
	first.Mount(m)
	second.Unmount(m)
	assert.True(t, m.AttachedTo(first), "unmounting from the old container keeps the new host")
}

func TestMount_ReattachesControlThatMovedAway(t *testing.T) {
	first, second := New(40, 10), New(40, 10)
	m := &recordingMount{}

	first.Mount(m)
	second.Mount(m)
	first.Mount(m)

	require.Len(t, m.attached, 3)
	assert.True(t, m.AttachedTo(first))
}
