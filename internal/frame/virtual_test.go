package frame

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestVirtualLoopOrderingAndClock(t *testing.T) {
	l := NewVirtualLoop(50)
	var got []string

	l.RequestTick(func(now time.Duration) {
		got = append(got, "a@"+now.String())
		l.RequestTick(func(now time.Duration) { got = append(got, "c@"+now.String()) })
	})
	l.RequestTick(func(now time.Duration) { got = append(got, "b@"+now.String()) })

	if fired := l.Step(); fired != 2 {
		t.Errorf("first step fired %d", fired)
	}
	l.Step()

	want := []string{"a@20ms", "b@20ms", "c@40ms"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tick order mismatch (-want +got):\n%s", diff)
	}
	if l.Frame() != 2 || l.Now() != 40*time.Millisecond {
		t.Errorf("frame %d now %v", l.Frame(), l.Now())
	}
}

func TestVirtualLoopCancel(t *testing.T) {
	l := NewVirtualLoop(60)
	ran := map[string]bool{}

	var second = l.RequestTick(func(time.Duration) { ran["second"] = true })
	l.RequestTick(func(time.Duration) { ran["third"] = true })
	first := l.RequestTick(func(time.Duration) { ran["first"] = true })
	l.CancelTick(first)

	l.RequestTick(func(time.Duration) {})
	l.CancelTick(second)
	l.CancelTick(second)

	if l.Pending() != 2 {
		t.Fatalf("pending = %d, want 2", l.Pending())
	}
	l.Step()
	if ran["first"] || ran["second"] || !ran["third"] {
		t.Errorf("ran = %v", ran)
	}
}

func TestVirtualLoopCancelWithinTick(t *testing.T) {
	l := NewVirtualLoop(60)
	ranLater := false
	var later = l.RequestTick(func(time.Duration) { ranLater = true })
	l.RequestTick(func(time.Duration) {})
	// Registered first so it runs before "later" in the same tick.
	l.q.entries = append([]*entry{{id: 999, fn: func(time.Duration) { l.CancelTick(later) }}}, l.q.entries...)

	l.Step()
	if ranLater {
		t.Error("callback cancelled earlier in the same tick still ran")
	}
}

func TestRunUntilIdle(t *testing.T) {
	l := NewVirtualLoop(60)
	n := 0
	var again func(time.Duration)
	again = func(time.Duration) {
		n++
		if n < 5 {
			l.RequestTick(again)
		}
	}
	l.RequestTick(again)

	if steps := l.RunUntilIdle(100); steps != 5 {
		t.Errorf("steps = %d, want 5", steps)
	}
	if steps := l.RunUntilIdle(100); steps != 0 {
		t.Errorf("idle loop stepped %d times", steps)
	}
}

func TestInterval(t *testing.T) {
	if Interval(0) != time.Second/60 {
		t.Errorf("default interval %v", Interval(0))
	}
	if Interval(25) != 40*time.Millisecond {
		t.Errorf("25fps interval %v", Interval(25))
	}
}
