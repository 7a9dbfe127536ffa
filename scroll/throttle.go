// ABOUTME: Rate limiter for scroll events with leading and trailing edge delivery
// ABOUTME: At most one event per interval; the last coalesced event fires when the window closes

package scroll

import "time"

type throttleDecision int

const (
	throttleFire      throttleDecision = iota // Deliver the event now
	throttleSchedule                          // Coalesced; caller must schedule a flush
	throttleCoalesced                         // Coalesced into an already scheduled flush
)

type throttler struct {
	interval   time.Duration
	last       time.Time
	fired      bool
	pending    Event
	hasPending bool
	scheduled  bool
}

// offer records an event and decides whether it is delivered now.
// For throttleSchedule the returned duration is how long to wait before flush.
func (t *throttler) offer(ev Event, now time.Time) (throttleDecision, time.Duration) {
	if !t.scheduled && (!t.fired || now.Sub(t.last) >= t.interval) {
		t.last = now
		t.fired = true

		return throttleFire, 0
	}

	t.pending = ev
	t.hasPending = true

	if t.scheduled {
		return throttleCoalesced, 0
	}

	t.scheduled = true

	wait := t.interval - now.Sub(t.last)
	if wait < 0 {
		wait = 0
	}

	return throttleSchedule, wait
}

// flush delivers the trailing event, if any
func (t *throttler) flush(now time.Time) (Event, bool) {
	t.scheduled = false
	if !t.hasPending {
		return Event{}, false
	}

	ev := t.pending
	t.pending = Event{}
	t.hasPending = false
	t.last = now
	t.fired = true

	return ev, true
}

func (t *throttler) reset() {
	*t = throttler{interval: t.interval}
}
