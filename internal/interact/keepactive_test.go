package interact

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ivlev/scrollcast/internal/frame"
	"github.com/ivlev/scrollcast/internal/scroll"
)

type listContainer struct {
	client, content float64
	pos             float64
}

func (c *listContainer) ClientSize(scroll.Axis) float64        { return c.client }
func (c *listContainer) ScrollSize(scroll.Axis) float64        { return c.content }
func (c *listContainer) ScrollPos(scroll.Axis) float64         { return c.pos }
func (c *listContainer) SetScrollPos(_ scroll.Axis, p float64) { c.pos = p }

func TestKeepActiveDefersToNextTick(t *testing.T) {
	loop := frame.NewVirtualLoop(60)
	c := &listContainer{client: 100, content: 1000}
	k := NewKeepActive[string](loop, scroll.Options{ContainerAnchor: scroll.AnchorMiddle, TargetAnchor: scroll.AnchorMiddle})
	k.SetContainer(c)

	// registered after SetActive but before the tick
	k.SetActive("b")
	k.SetItem("a", scroll.Box{Y: 0, H: 20})
	k.SetItem("b", scroll.Box{Y: 500, H: 20})

	loop.RunUntilIdle(200)
	if c.pos != 460 {
		t.Errorf("pos = %v, want 460", c.pos)
	}
}

func TestKeepActiveLatestWins(t *testing.T) {
	loop := frame.NewVirtualLoop(60)
	c := &listContainer{client: 100, content: 1000}
	k := NewKeepActive[int](loop, scroll.Options{})
	k.SetContainer(c)
	k.SetItem(1, scroll.Box{Y: 200, H: 20})
	k.SetItem(2, scroll.Box{Y: 300, H: 20})

	k.SetActive(1)
	k.SetActive(2)
	loop.RunUntilIdle(200)
	if c.pos != 300 {
		t.Errorf("pos = %v, want 300", c.pos)
	}
}

func TestKeepActiveUnknownAndRemoved(t *testing.T) {
	loop := frame.NewVirtualLoop(60)
	c := &listContainer{client: 100, content: 1000}
	k := NewKeepActive[string](loop, scroll.Options{})
	k.SetContainer(c)
	k.SetItem("x", scroll.Box{Y: 400, H: 10})
	k.SetItem("x", nil)

	if k.ScrollToItem("x", nil) {
		t.Error("removed item still scrollable")
	}
	if loop.Pending() != 0 {
		t.Errorf("pending = %d, want 0", loop.Pending())
	}
}

func TestKeepActiveOverrideAndStop(t *testing.T) {
	loop := frame.NewVirtualLoop(60)
	c := &listContainer{client: 100, content: 1000}
	k := NewKeepActive[string](loop, scroll.Options{})
	k.SetContainer(c)
	k.SetItem("x", scroll.Box{Y: 400, H: 10})

	var done []string
	off := scroll.Px(-50)
	ok := k.ScrollToItem("x", &scroll.Override{
		Offset:     &off,
		OnComplete: func() { done = append(done, "x") },
	})
	if !ok {
		t.Fatal("ScrollToItem returned false")
	}
	loop.RunUntilIdle(200)
	if c.pos != 350 {
		t.Errorf("pos = %v, want 350", c.pos)
	}
	if diff := cmp.Diff([]string{"x"}, done); diff != "" {
		t.Errorf("completions mismatch (-want +got):\n%s", diff)
	}

	k.SetActive("x")
	k.Stop()
	if loop.Pending() != 0 {
		t.Errorf("pending after Stop = %d", loop.Pending())
	}
}

func TestMeasurerCoalesces(t *testing.T) {
	loop := frame.NewVirtualLoop(60)
	calls := 0
	w := 10.0
	m := NewMeasurer(loop, func() Rect {
		calls++
		return Rect{W: w, H: 5}
	})
	var changes []Rect
	m.OnChange = func(r Rect) { changes = append(changes, r) }

	w = 20
	m.Invalidate()
	m.Invalidate()
	m.Invalidate()
	loop.Step()

	if calls != 2 {
		t.Errorf("measure calls = %d, want 2", calls)
	}
	if diff := cmp.Diff([]Rect{{W: 20, H: 5}}, changes); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}

	m.Invalidate()
	loop.Step()
	if len(changes) != 1 {
		t.Errorf("unchanged rect reported: %v", changes)
	}

	m.Invalidate()
	m.Stop()
	if loop.Pending() != 0 {
		t.Errorf("pending after Stop = %d", loop.Pending())
	}
}

func TestKeepActiveExplicitStartOverride(t *testing.T) {
	loop := frame.NewVirtualLoop(60)
	c := &listContainer{client: 100, content: 1000}
	k := NewKeepActive[string](loop, scroll.Options{TargetAnchor: scroll.AnchorMiddle, ContainerAnchor: scroll.AnchorMiddle})
	k.SetContainer(c)
	k.SetItem("x", scroll.Box{Y: 400, H: 10})

	start := scroll.AnchorStart
	k.ScrollToItem("x", &scroll.Override{TargetAnchor: &start, ContainerAnchor: &start})
	loop.RunUntilIdle(200)
	if c.pos != 400 {
		t.Errorf("pos = %v, want 400", c.pos)
	}
}
