package interact

import "math"

type ResizeAxis int

const (
	ResizeBoth ResizeAxis = iota
	ResizeX
	ResizeY
)

// Edge is the handle being dragged.
type Edge int

const (
	EdgeBottomRight Edge = iota
	EdgeRight
	EdgeBottom
)

// Resizable tracks a size changed by dragging a handle. Drag deltas are measured
// from where the drag began, not accumulated per event.
type Resizable struct {
	MinW, MaxW float64
	MinH, MaxH float64
	Axis       ResizeAxis
	LockAspect bool
	Disabled   bool

	size     Size
	start    Size
	resizing bool
}

// NewResizable starts at initial with no upper limits.
func NewResizable(initial Size) *Resizable {
	return &Resizable{
		MaxW: math.Inf(1),
		MaxH: math.Inf(1),
		size: initial,
	}
}

func (r *Resizable) Size() Size { return r.size }

func (r *Resizable) Resizing() bool { return r.resizing }

// SetSize stores s clamped to the limits.
func (r *Resizable) SetSize(s Size) Size {
	r.size = Size{
		W: clamp(s.W, r.MinW, r.MaxW),
		H: clamp(s.H, r.MinH, r.MaxH),
	}
	return r.size
}

// Begin records the size the drag starts from.
func (r *Resizable) Begin() {
	if r.Disabled {
		return
	}
	r.start = r.size
	r.resizing = true
}

// Drag resizes from the starting size by the total pointer delta since Begin.
func (r *Resizable) Drag(edge Edge, dx, dy float64) Size {
	if r.Disabled || !r.resizing {
		return r.size
	}
	w, h := r.start.W, r.start.H

	if edge == EdgeRight || edge == EdgeBottomRight {
		w += dx
	}
	if edge == EdgeBottom || edge == EdgeBottomRight {
		h += dy
	}

	switch r.Axis {
	case ResizeX:
		h = r.start.H
	case ResizeY:
		w = r.start.W
	}

	if r.LockAspect && r.start.H != 0 {
		aspect := r.start.W / r.start.H
		switch edge {
		case EdgeRight:
			h = w / aspect
		case EdgeBottom:
			w = h * aspect
		default:
			w = r.start.W + (dx+dy)/2
			h = w / aspect
		}
	}

	return r.SetSize(Size{W: w, H: h})
}

func (r *Resizable) End() {
	r.resizing = false
}
