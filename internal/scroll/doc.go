// Package scroll resolves and animates scroll-into-view positioning.
//
// Two stateless pieces do the work. Resolve computes the scroll offset that puts an
// anchor point of a target at an anchor point of the container viewport, clamped to
// the scrollable range. Animate moves a container to an offset over a duration that
// adapts to the distance, on whatever Scheduler the caller provides, and returns a
// Handle that cancels the run.
//
// Scroller composes the two and remembers the last running animation so a new request
// stops the previous one first. Nothing here tracks animations per container; callers
// that share a container must cancel before starting again.
package scroll
