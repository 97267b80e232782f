package interact

import (
	"time"

	"github.com/ivlev/scrollcast/internal/scroll"
)

// Measurer caches a rectangle and re-measures it at most once per tick, however
// many times it is invalidated in between.
type Measurer struct {
	sched    scroll.Scheduler
	measure  func() Rect
	rect     Rect
	pending  scroll.TickID
	waiting  bool
	OnChange func(Rect)
}

// NewMeasurer measures once immediately.
func NewMeasurer(s scroll.Scheduler, measure func() Rect) *Measurer {
	return &Measurer{sched: s, measure: measure, rect: measure()}
}

func (m *Measurer) Rect() Rect { return m.rect }

// Invalidate schedules a measurement for the next tick, replacing any pending one.
func (m *Measurer) Invalidate() {
	if m.waiting {
		m.sched.CancelTick(m.pending)
	}
	m.waiting = true
	m.pending = m.sched.RequestTick(func(time.Duration) {
		m.waiting = false
		r := m.measure()
		if r == m.rect {
			return
		}
		m.rect = r
		if m.OnChange != nil {
			m.OnChange(r)
		}
	})
}

// Stop drops a pending measurement.
func (m *Measurer) Stop() {
	if m.waiting {
		m.sched.CancelTick(m.pending)
		m.waiting = false
	}
}
