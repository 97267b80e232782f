package scroll

// Resolve returns the scroll offset along axis that places targetAnchor of t at
// containerAnchor of the viewport, shifted by offset and clamped to [0, max scroll].
// Content that does not overflow resolves to 0.
func Resolve(v Viewport, t Target, axis Axis, targetAnchor, containerAnchor Anchor, offset Offset) float64 {
	clientSize := v.ClientSize(axis)
	maxScroll := v.ScrollSize(axis) - clientSize
	if maxScroll <= 0 {
		return 0
	}

	targetSize := t.OffsetSize(axis)
	targetAnchorPos := t.OffsetPos(axis) + targetSize*targetAnchor.fraction()
	containerAnchorPos := clientSize * containerAnchor.fraction()

	pos := targetAnchorPos - containerAnchorPos + offset.Pixels(targetSize)
	return clamp(pos, 0, maxScroll)
}

// ResolveOptions is Resolve with the anchors, offset and axis taken from opts.
func ResolveOptions(v Viewport, t Target, opts Options) float64 {
	return Resolve(v, t, opts.Axis, opts.TargetAnchor, opts.ContainerAnchor, opts.Offset)
}

// MaxScroll is the largest valid scroll position along axis, never negative.
func MaxScroll(v Viewport, axis Axis) float64 {
	m := v.ScrollSize(axis) - v.ClientSize(axis)
	if m < 0 {
		return 0
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
