// Package interact holds the arithmetic behind pointer-driven widgets: slider value
// mapping, resizing, dragging, coalesced measurement and keeping an active item
// scrolled into view. Callers translate their own input events into the points and
// deltas these types take; nothing here captures a pointer or owns an event loop.
package interact
