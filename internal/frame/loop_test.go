package frame

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopRunsTicksAndPostedWork(t *testing.T) {
	l := NewLoop(200)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticks := make(chan time.Duration, 4)
	var count int
	var tick func(now time.Duration)
	tick = func(now time.Duration) {
		count++
		ticks <- now
		if count < 3 {
			l.RequestTick(tick)
		}
	}

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	l.Post(func() { l.RequestTick(tick) })

	var last time.Duration
	for i := 0; i < 3; i++ {
		select {
		case now := <-ticks:
			if now < last {
				t.Errorf("clock went backwards: %v -> %v", last, now)
			}
			last = now
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d never arrived", i)
		}
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v", err)
	}
}

func TestLoopCancelTick(t *testing.T) {
	l := NewLoop(200)
	fired := make(chan struct{}, 1)
	id := l.RequestTick(func(time.Duration) { fired <- struct{}{} })
	l.CancelTick(id)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	l.Run(ctx)

	select {
	case <-fired:
		t.Error("cancelled tick fired")
	default:
	}
}
