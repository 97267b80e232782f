package scroll

import (
	"fmt"
	"strings"
)

// Axis selects the scroll dimension used by one resolve/animate pair.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseAxis accepts "vertical"/"horizontal" (and the short forms "y"/"x").
// An empty string is the vertical default.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical", "v", "y":
		return Vertical, nil
	case "horizontal", "h", "x":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown scroll direction %q", s)
}

func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Axis) UnmarshalText(text []byte) error {
	v, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
