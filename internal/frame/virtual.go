package frame

import (
	"time"

	"github.com/ivlev/scrollcast/internal/scroll"
)

// VirtualLoop is a deterministic scheduler with a manual clock. Each Step moves the
// clock forward by one frame interval and fires the callbacks that were pending
// before the step. It is not safe for concurrent use.
type VirtualLoop struct {
	interval time.Duration
	now      time.Duration
	frame    int
	q        queue
}

// NewVirtualLoop returns a loop ticking at fps frames per second (60 if fps <= 0).
func NewVirtualLoop(fps int) *VirtualLoop {
	return &VirtualLoop{interval: Interval(fps)}
}

// Interval is the frame interval for fps, defaulting to 60 fps.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

func (l *VirtualLoop) Now() time.Duration { return l.now }

func (l *VirtualLoop) RequestTick(fn func(now time.Duration)) scroll.TickID {
	return l.q.add(fn)
}

func (l *VirtualLoop) CancelTick(id scroll.TickID) {
	l.q.cancel(id)
}

// Step advances one frame and returns how many callbacks ran.
func (l *VirtualLoop) Step() int {
	l.now += l.interval
	l.frame++
	fired := 0
	for _, e := range l.q.drain() {
		if e.cancelled {
			continue
		}
		e.fn(l.now)
		fired++
	}
	l.q.done()
	return fired
}

// Advance moves the clock without firing anything, to simulate a late frame.
func (l *VirtualLoop) Advance(d time.Duration) {
	l.now += d
}

// RunUntilIdle steps until nothing is pending or maxSteps is reached and returns
// the number of steps taken.
func (l *VirtualLoop) RunUntilIdle(maxSteps int) int {
	steps := 0
	for l.q.len() > 0 && steps < maxSteps {
		l.Step()
		steps++
	}
	return steps
}

// Pending is the number of callbacks waiting for the next tick.
func (l *VirtualLoop) Pending() int { return l.q.len() }

// Frame is the number of steps taken so far.
func (l *VirtualLoop) Frame() int { return l.frame }

func (l *VirtualLoop) FrameInterval() time.Duration { return l.interval }
