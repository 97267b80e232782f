package frame

import (
	"context"
	"sync"
	"time"

	"github.com/ivlev/scrollcast/internal/scroll"
)

// Loop is a real-time refresh loop. Tick callbacks and posted work all run on the
// goroutine that called Run, so code driven by the loop needs no locking of its own.
type Loop struct {
	mu       sync.Mutex
	origin   time.Time
	interval time.Duration
	q        queue
	posted   []func()
	wake     chan struct{}
}

// NewLoop returns a loop refreshing at fps frames per second (60 if fps <= 0).
func NewLoop(fps int) *Loop {
	return &Loop{
		origin:   time.Now(),
		interval: Interval(fps),
		wake:     make(chan struct{}, 1),
	}
}

// Now is the monotonic time since the loop was created.
func (l *Loop) Now() time.Duration {
	return time.Since(l.origin)
}

func (l *Loop) RequestTick(fn func(now time.Duration)) scroll.TickID {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.q.add(fn)
}

func (l *Loop) CancelTick(id scroll.TickID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.q.cancel(id)
}

// Post queues fn to run on the loop goroutine as soon as possible.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drives the loop until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.runPosted()
		case <-ticker.C:
			l.runPosted()
			l.tick()
		}
	}
}

func (l *Loop) runPosted() {
	l.mu.Lock()
	work := l.posted
	l.posted = nil
	l.mu.Unlock()
	for _, fn := range work {
		fn()
	}
}

func (l *Loop) tick() {
	now := l.Now()
	l.mu.Lock()
	batch := l.q.drain()
	l.mu.Unlock()

	for _, e := range batch {
		l.mu.Lock()
		cancelled := e.cancelled
		l.mu.Unlock()
		if !cancelled {
			e.fn(now)
		}
	}

	l.mu.Lock()
	l.q.done()
	l.mu.Unlock()
}
