package scroll

import (
	"math"
	"time"
)

const (
	// ReferenceSpeed is the scroll speed animations aim for, in pixels per millisecond.
	ReferenceSpeed = 1.5
	// MinDuration keeps short scrolls perceptible.
	MinDuration = 200 * time.Millisecond
)

// Handle cancels an animation. Calling it more than once, or after the animation
// finished, does nothing.
type Handle func()

// Stop calls h if it is not nil.
func (h Handle) Stop() {
	if h != nil {
		h()
	}
}

// EffectiveDuration is the time an animation covering distance pixels takes: the
// distance at ReferenceSpeed, clamped to [MinDuration, maxDuration].
func EffectiveDuration(distance float64, maxDuration time.Duration) time.Duration {
	ideal := time.Duration(math.Abs(distance) / ReferenceSpeed * float64(time.Millisecond))
	if ideal > maxDuration {
		ideal = maxDuration
	}
	if ideal < MinDuration {
		ideal = MinDuration
	}
	return ideal
}

type animState int

const (
	animRunning animState = iota
	animCompleted
	animCancelled
)

// Animate drives c's scroll position along opts.Axis to `to`, one step per tick of s.
// Intermediate ticks write the eased position; the final tick writes `to` exactly and
// then calls opts.OnComplete. A distance under one pixel completes synchronously
// without scheduling anything.
func Animate(s Scheduler, c Container, to float64, opts Options) Handle {
	axis := opts.Axis
	start := c.ScrollPos(axis)
	distance := to - start

	if math.Abs(distance) < 1 {
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return func() {}
	}

	duration := EffectiveDuration(distance, opts.maxDuration())
	ease := opts.easing()
	startTime := s.Now()
	state := animRunning
	var tick TickID

	var loop func(now time.Duration)
	loop = func(now time.Duration) {
		if state != animRunning {
			return
		}
		elapsed := now - startTime
		if elapsed < 0 {
			elapsed = 0
		}
		progress := math.Min(float64(elapsed)/float64(duration), 1)

		c.SetScrollPos(axis, start+distance*ease(progress))

		if progress < 1 {
			tick = s.RequestTick(loop)
			return
		}
		c.SetScrollPos(axis, to)
		state = animCompleted
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
	}
	tick = s.RequestTick(loop)

	return func() {
		if state != animRunning {
			return
		}
		state = animCancelled
		s.CancelTick(tick)
	}
}
