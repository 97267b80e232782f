package scroll

import "time"

const DefaultMaxDuration = 800 * time.Millisecond

// Options bundles the caller-facing settings for a scroll request.
type Options struct {
	// MaxDuration caps the animation time. Zero means DefaultMaxDuration.
	MaxDuration time.Duration
	// Easing defaults to Linear.
	Easing          Easing
	TargetAnchor    Anchor
	ContainerAnchor Anchor
	Offset          Offset
	Axis            Axis
	// OnComplete fires once when the animation finishes naturally, never on cancel.
	OnComplete func()
}

func (o Options) maxDuration() time.Duration {
	if o.MaxDuration <= 0 {
		return DefaultMaxDuration
	}
	return o.MaxDuration
}

func (o Options) easing() Easing {
	if o.Easing == nil {
		return Linear
	}
	return o.Easing
}

// Override replaces fields of Options for a single call. Nil fields keep the base
// value; a non-nil field is applied even when it holds the zero value, so an explicit
// AnchorStart or Vertical wins over a different default.
type Override struct {
	MaxDuration     *time.Duration
	Easing          Easing
	TargetAnchor    *Anchor
	ContainerAnchor *Anchor
	Offset          *Offset
	Axis            *Axis
	OnComplete      func()
}

// Apply returns o with every set field of ov applied on top.
func (o Options) Apply(ov Override) Options {
	if ov.MaxDuration != nil {
		o.MaxDuration = *ov.MaxDuration
	}
	if ov.Easing != nil {
		o.Easing = ov.Easing
	}
	if ov.TargetAnchor != nil {
		o.TargetAnchor = *ov.TargetAnchor
	}
	if ov.ContainerAnchor != nil {
		o.ContainerAnchor = *ov.ContainerAnchor
	}
	if ov.Offset != nil {
		o.Offset = *ov.Offset
	}
	if ov.Axis != nil {
		o.Axis = *ov.Axis
	}
	if ov.OnComplete != nil {
		o.OnComplete = ov.OnComplete
	}
	return o
}
