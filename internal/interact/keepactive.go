package interact

import (
	"time"

	"github.com/ivlev/scrollcast/internal/scroll"
)

// KeepActive keeps the active item of a list scrolled into view. Items register
// their targets under a key; activating a key scrolls to it on the next tick so that
// targets registered in the same frame are already known.
type KeepActive[K comparable] struct {
	sched    scroll.Scheduler
	scroller *scroll.Scroller
	items    map[K]scroll.Target
	opts     scroll.Options
	deferred scroll.TickID
	waiting  bool
}

func NewKeepActive[K comparable](s scroll.Scheduler, opts scroll.Options) *KeepActive[K] {
	return &KeepActive[K]{
		sched:    s,
		scroller: scroll.NewScroller(s, nil),
		items:    make(map[K]scroll.Target),
		opts:     opts,
	}
}

func (k *KeepActive[K]) SetContainer(c scroll.Container) {
	k.scroller.SetContainer(c)
}

// SetItem registers t under key. A nil target removes the key.
func (k *KeepActive[K]) SetItem(key K, t scroll.Target) {
	if t == nil {
		delete(k.items, key)
		return
	}
	k.items[key] = t
}

// ScrollToItem scrolls to the item now. Set fields of override replace the defaults
// given to NewKeepActive. It reports whether the key was known.
func (k *KeepActive[K]) ScrollToItem(key K, override *scroll.Override) bool {
	t, ok := k.items[key]
	if !ok {
		return false
	}
	opts := k.opts
	if override != nil {
		opts = opts.Apply(*override)
	}
	k.scroller.ScrollTo(t, opts)
	return true
}

// SetActive scrolls to key on the next tick.
func (k *KeepActive[K]) SetActive(key K) {
	if k.waiting {
		k.sched.CancelTick(k.deferred)
	}
	k.waiting = true
	k.deferred = k.sched.RequestTick(func(time.Duration) {
		k.waiting = false
		k.ScrollToItem(key, nil)
	})
}

// Stop cancels a deferred activation and any running scroll.
func (k *KeepActive[K]) Stop() {
	if k.waiting {
		k.sched.CancelTick(k.deferred)
		k.waiting = false
	}
	k.scroller.Stop()
}
