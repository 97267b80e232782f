package scroll

import (
	"fmt"
	"strconv"
	"strings"
)

// Anchor is a reference point along an element's extent: start, middle, end, or a
// percentage (0-100) of the extent. The zero value is start.
type Anchor struct {
	pct     float64
	percent bool
	name    string
}

var (
	AnchorStart  = Anchor{}
	AnchorMiddle = Anchor{name: "middle"}
	AnchorEnd    = Anchor{name: "end"}
)

// AnchorPercent returns an anchor at pct percent of the extent.
func AnchorPercent(pct float64) Anchor {
	return Anchor{pct: pct, percent: true}
}

// IsPercent reports whether the anchor was given numerically.
func (a Anchor) IsPercent() bool { return a.percent }

// fraction returns the anchor position as a fraction of the element size.
func (a Anchor) fraction() float64 {
	if a.percent {
		return a.pct / 100
	}
	switch a.name {
	case "middle":
		return 0.5
	case "end":
		return 1
	}
	return 0
}

func (a Anchor) String() string {
	if a.percent {
		return strconv.FormatFloat(a.pct, 'f', -1, 64)
	}
	if a.name == "" {
		return "start"
	}
	return a.name
}

// ParseAnchor accepts start, middle, end or a number between 0 and 100.
// A trailing "%" on the number is allowed.
func ParseAnchor(s string) (Anchor, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "start", "top", "left":
		return AnchorStart, nil
	case "middle", "center", "centre":
		return AnchorMiddle, nil
	case "end", "bottom", "right":
		return AnchorEnd, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return AnchorStart, fmt.Errorf("invalid anchor %q", s)
	}
	// NaN fails both comparisons.
	if !(v >= 0 && v <= 100) {
		return AnchorStart, fmt.Errorf("anchor percentage %v out of range 0-100", v)
	}
	return AnchorPercent(v), nil
}

func (a Anchor) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Anchor) UnmarshalText(text []byte) error {
	v, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Offset is an extra adjustment applied after anchor alignment, either in pixels or
// as a percentage of the target's size along the active axis.
type Offset struct {
	Value   float64
	Percent bool
}

// Px returns a pixel offset.
func Px(v float64) Offset { return Offset{Value: v} }

// Percent returns an offset relative to the target size.
func Percent(p float64) Offset { return Offset{Value: p, Percent: true} }

// Pixels resolves the offset against the target size.
func (o Offset) Pixels(targetSize float64) float64 {
	if o.Percent {
		return o.Value / 100 * targetSize
	}
	return o.Value
}

func (o Offset) String() string {
	v := strconv.FormatFloat(o.Value, 'f', -1, 64)
	if o.Percent {
		return v + "%"
	}
	return v
}

// ParseOffset never fails. A string ending in "%" is a percentage of the target size;
// anything else is read by its leading number ("12px" is 12). An unparseable number
// contributes 0.
func ParseOffset(s string) Offset {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return Percent(leadingFloat(strings.TrimSuffix(s, "%")))
	}
	return Px(leadingFloat(s))
}

func (o Offset) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Offset) UnmarshalText(text []byte) error {
	*o = ParseOffset(string(text))
	return nil
}

// leadingFloat parses the longest numeric prefix of s, 0 if there is none.
func leadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDigit, seenDot, seenExp := false, false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E'):
		case c == '.' && !seenDot && !seenExp:
			seenDot = true
		case (c == 'e' || c == 'E') && seenDigit && !seenExp:
			seenExp = true
		default:
			return parsePrefix(s, end)
		}
		if seenDigit {
			end = i + 1
		}
	}
	return parsePrefix(s, end)
}

func parsePrefix(s string, end int) float64 {
	for ; end > 0; end-- {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v
		}
	}
	return 0
}
