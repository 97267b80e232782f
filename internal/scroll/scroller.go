package scroll

// Scroller pairs a container with a scheduler and keeps the handle of the last
// animation it started, so each new request cancels the one before it.
type Scroller struct {
	sched     Scheduler
	container Container
	running   Handle
}

func NewScroller(s Scheduler, c Container) *Scroller {
	return &Scroller{sched: s, container: c}
}

// ScrollTo animates the container so that t is aligned as opts describes.
// It does nothing without a container or target.
func (s *Scroller) ScrollTo(t Target, opts Options) {
	if s.container == nil || t == nil {
		return
	}
	s.Stop()
	to := ResolveOptions(s.container, t, opts)
	s.running = Animate(s.sched, s.container, to, opts)
}

// ScrollToOffset animates to an absolute position, clamped to the scroll range.
func (s *Scroller) ScrollToOffset(pos float64, opts Options) {
	if s.container == nil {
		return
	}
	s.Stop()
	to := clamp(pos, 0, MaxScroll(s.container, opts.Axis))
	s.running = Animate(s.sched, s.container, to, opts)
}

// Stop cancels the running animation, if any.
func (s *Scroller) Stop() {
	if s.running != nil {
		s.running()
		s.running = nil
	}
}

func (s *Scroller) Container() Container { return s.container }

// SetContainer swaps the container. A running animation keeps its old container
// until it ends or is stopped.
func (s *Scroller) SetContainer(c Container) {
	s.container = c
}

// Destroy stops any animation and detaches the container.
func (s *Scroller) Destroy() {
	s.Stop()
	s.container = nil
}
