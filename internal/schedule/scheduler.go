// Package schedule owns the refresh timing state: when the last fetch
// happened, at what viewport size, and when the size last changed. The UI
// layer never reads or writes these fields directly; it asks IsDue and
// reports events through the Record/Observe methods.
package schedule

import "time"

// Size is a chart viewport size in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Scheduler decides whether a background refresh is due. Two independent
// triggers, OR-combined: the tick interval elapsing since the last fetch,
// and the viewport size differing from the last-fetched size after staying
// stable for the debounce window.
type Scheduler struct {
	tick     time.Duration
	debounce time.Duration

	lastFetch      time.Time
	fetchedSize    Size
	observedSize   Size
	lastSizeChange time.Time
	forced         bool
}

// New creates a scheduler. The first IsDue call reports true so the initial
// fetch happens on the first loop pass.
func New(tick, debounce time.Duration, now time.Time) *Scheduler {
	return &Scheduler{
		tick:           tick,
		debounce:       debounce,
		lastFetch:      now,
		lastSizeChange: now,
		forced:         true,
	}
}

// ObserveSize records a viewport size observation. Any change restarts the
// debounce window, even mid-debounce, so an actively resizing terminal
// never triggers a refetch storm.
func (s *Scheduler) ObserveSize(now time.Time, size Size) {
	if size != s.observedSize {
		s.observedSize = size
		s.lastSizeChange = now
	}
}

// IsDue reports whether a refresh should be issued now for the given
// viewport size. The caller suppresses it entirely while a modal input mode
// is active.
func (s *Scheduler) IsDue(now time.Time, size Size) bool {
	s.ObserveSize(now, size)
	if s.forced {
		return true
	}
	if now.Sub(s.lastFetch) >= s.tick {
		return true
	}
	if size != s.fetchedSize && size.Width > 0 && now.Sub(s.lastSizeChange) >= s.debounce {
		return true
	}
	return false
}

// Force makes the next IsDue report true regardless of timers. Called when
// leaving a modal mode so menu changes are reflected immediately.
func (s *Scheduler) Force() { s.forced = true }

// RecordFetch resets the tick timer and remembers the size the fetch was
// issued for, re-arming the resize trigger for any different future size.
func (s *Scheduler) RecordFetch(now time.Time, size Size) {
	s.lastFetch = now
	s.fetchedSize = size
	s.forced = false
}

// Remaining returns the time until the next tick-driven refresh, floored at
// zero. Shown as the countdown in the header.
func (s *Scheduler) Remaining(now time.Time) time.Duration {
	d := s.tick - now.Sub(s.lastFetch)
	if d < 0 {
		return 0
	}
	return d
}
