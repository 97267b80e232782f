package scroll

import "time"

// Viewport exposes the extents Resolve needs from a scroll container.
type Viewport interface {
	// ClientSize is the visible extent along the axis.
	ClientSize(axis Axis) float64
	// ScrollSize is the total content extent along the axis.
	ScrollSize(axis Axis) float64
}

// Container is a scrollable region whose position can be read and written.
type Container interface {
	Viewport
	ScrollPos(axis Axis) float64
	SetScrollPos(axis Axis, pos float64)
}

// Target is an element inside a container. Positions are relative to the
// container's content origin.
type Target interface {
	OffsetPos(axis Axis) float64
	OffsetSize(axis Axis) float64
}

// Box is a plain rectangle usable as a Target.
type Box struct {
	X, Y, W, H float64
}

func (b Box) OffsetPos(axis Axis) float64 {
	if axis == Horizontal {
		return b.X
	}
	return b.Y
}

func (b Box) OffsetSize(axis Axis) float64 {
	if axis == Horizontal {
		return b.W
	}
	return b.H
}

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Duration
}

// TickID identifies a pending tick registration.
type TickID uint64

// Scheduler runs callbacks before each display refresh. RequestTick registers a
// single callback for the next tick; CancelTick drops it if it has not fired yet.
type Scheduler interface {
	Clock
	RequestTick(fn func(now time.Duration)) TickID
	CancelTick(id TickID)
}
