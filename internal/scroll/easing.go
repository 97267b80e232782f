package scroll

import (
	"fmt"
	"math"
)

// Easing maps linear progress in [0,1] to eased progress. Custom functions must be
// total over [0,1]; a panicking easing is not recovered by Animate.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// EaseInOutCubic accelerates through the first half and decelerates through the second.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

var builtinEasings = map[string]Easing{
	"linear":         Linear,
	"easeInOutCubic": EaseInOutCubic,
}

// EasingByName returns a built-in easing. An empty name is linear.
func EasingByName(name string) (Easing, error) {
	if name == "" {
		return Linear, nil
	}
	if e, ok := builtinEasings[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}
