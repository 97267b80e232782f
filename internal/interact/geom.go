package interact

import "math"

type Point struct {
	X, Y float64
}

type Size struct {
	W, H float64
}

type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r (right and bottom edges excluded).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Bounds limits a dragged position.
type Bounds struct {
	Left, Top, Right, Bottom float64
}

func (b Bounds) clamp(p Point) Point {
	return Point{
		X: clamp(p.X, b.Left, b.Right),
		Y: clamp(p.Y, b.Top, b.Bottom),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
