package interact

import (
	"math"

	"github.com/ivlev/scrollcast/internal/scroll"
)

// Slider maps pointer movement on a track to a value in [Min, Max] snapped to Step.
type Slider struct {
	Min, Max float64
	// Step of 0 disables snapping.
	Step float64
	Axis scroll.Axis
	// RTL flips horizontal tracks so that the right edge is Min.
	RTL bool
}

// NewSlider returns a 0..100 slider with step 1.
func NewSlider() Slider {
	return Slider{Min: 0, Max: 100, Step: 1, Axis: scroll.Horizontal}
}

// Quantize clamps raw to the range and snaps it to the nearest step counted from Min.
func (s Slider) Quantize(raw float64) float64 {
	v := clamp(raw, s.Min, s.Max)
	if s.Step > 0 {
		v = math.Round((v-s.Min)/s.Step)*s.Step + s.Min
	}
	v = math.Round(v*1e6) / 1e6
	return clamp(v, s.Min, s.Max)
}

// ValueFromDrag applies a pointer delta, measured across a track of trackLen, to value.
func (s Slider) ValueFromDrag(value, dx, dy, trackLen float64) float64 {
	if trackLen <= 0 {
		return s.Quantize(value)
	}
	delta := dx
	if s.Axis == scroll.Vertical {
		delta = dy
	} else if s.RTL {
		delta = -delta
	}
	return s.Quantize(value + delta/trackLen*(s.Max-s.Min))
}

// ValueFromPoint maps a click at p on track to a value.
func (s Slider) ValueFromPoint(p Point, track Rect) float64 {
	offset, length := p.X-track.X, track.W
	if s.Axis == scroll.Vertical {
		offset, length = p.Y-track.Y, track.H
	} else if s.RTL {
		offset = track.W - offset
	}
	if length <= 0 {
		return s.Quantize(s.Min)
	}
	ratio := clamp(offset/length, 0, 1)
	return s.Quantize(s.Min + ratio*(s.Max-s.Min))
}

// Ratio is the position of value within the range, in [0,1].
func (s Slider) Ratio(value float64) float64 {
	if s.Max == s.Min {
		return 0
	}
	return clamp((value-s.Min)/(s.Max-s.Min), 0, 1)
}
