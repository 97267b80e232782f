package frame

import (
	"time"

	"github.com/ivlev/scrollcast/internal/scroll"
)

type entry struct {
	id        scroll.TickID
	fn        func(now time.Duration)
	cancelled bool
}

// queue holds tick registrations in request order. Entries taken by drain stay
// cancellable until the tick that fires them is over.
type queue struct {
	next     scroll.TickID
	entries  []*entry
	inflight []*entry
}

func (q *queue) add(fn func(now time.Duration)) scroll.TickID {
	q.next++
	q.entries = append(q.entries, &entry{id: q.next, fn: fn})
	return q.next
}

func (q *queue) cancel(id scroll.TickID) {
	for i, e := range q.entries {
		if e.id == id {
			e.cancelled = true
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
	for _, e := range q.inflight {
		if e.id == id {
			e.cancelled = true
			return
		}
	}
}

func (q *queue) drain() []*entry {
	q.inflight = q.entries
	q.entries = nil
	return q.inflight
}

func (q *queue) done() {
	q.inflight = nil
}

func (q *queue) len() int {
	return len(q.entries)
}
