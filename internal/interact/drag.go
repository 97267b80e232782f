package interact

type DragMode int

const (
	// DragObject moves the current position by the pointer delta.
	DragObject DragMode = iota
	// DragSlider jumps to the pointer on press, then follows it.
	DragSlider
)

// Draggable follows a pointer between Begin and End, optionally inside Bounds.
type Draggable struct {
	Mode   DragMode
	Bounds *Bounds

	pos      Point
	origin   Point
	start    Point
	dragging bool
}

func NewDraggable(initial Point, mode DragMode, bounds *Bounds) *Draggable {
	return &Draggable{Mode: mode, Bounds: bounds, pos: initial}
}

// Begin starts a drag at pointer position p.
func (d *Draggable) Begin(p Point) {
	d.origin = d.pos
	if d.Mode == DragSlider {
		d.origin = p
		d.pos = d.bound(p)
	}
	d.start = p
	d.dragging = true
}

// Move updates the position from the pointer at p and returns it.
func (d *Draggable) Move(p Point) Point {
	if !d.dragging {
		return d.pos
	}
	d.pos = d.bound(Point{
		X: d.origin.X + p.X - d.start.X,
		Y: d.origin.Y + p.Y - d.start.Y,
	})
	return d.pos
}

func (d *Draggable) End() {
	d.dragging = false
}

func (d *Draggable) Position() Point { return d.pos }

func (d *Draggable) Dragging() bool { return d.dragging }

// SetPosition moves the element without a drag, e.g. when it is driven elsewhere.
func (d *Draggable) SetPosition(p Point) {
	d.pos = d.bound(p)
}

func (d *Draggable) bound(p Point) Point {
	if d.Bounds == nil {
		return p
	}
	return d.Bounds.clamp(p)
}
