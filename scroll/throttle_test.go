// ABOUTME: Tests for the scroll event throttle
// ABOUTME: Verifies leading delivery, trailing flush and coalescing

package scroll

import (
	"testing"
	"time"
)

func TestThrottler(t *testing.T) {
	th := throttler{interval: 100 * time.Millisecond}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if d, _ := th.offer(Event{Y: 1}, start); d != throttleFire {
		t.Fatalf("first event: got %v, want fire", d)
	}

	d, wait := th.offer(Event{Y: 2}, start.Add(30*time.Millisecond))
	if d != throttleSchedule || wait != 70*time.Millisecond {
		t.Fatalf("second event: got %v after %v, want schedule after 70ms", d, wait)
	}

	if d, _ := th.offer(Event{Y: 3}, start.Add(60*time.Millisecond)); d != throttleCoalesced {
		t.Fatalf("third event: got %v, want coalesced", d)
	}

	ev, ok := th.flush(start.Add(100 * time.Millisecond))
	if !ok || ev.Y != 3 {
		t.Fatalf("flush = %+v, %v; want last event", ev, ok)
	}

	if _, ok := th.flush(start.Add(200 * time.Millisecond)); ok {
		t.Error("second flush should have nothing to deliver")
	}

	if d, _ := th.offer(Event{Y: 4}, start.Add(150*time.Millisecond)); d != throttleSchedule {
		t.Errorf("event inside window after flush: got %v, want schedule", d)
	}

	th.reset()
	if d, _ := th.offer(Event{Y: 5}, start.Add(160*time.Millisecond)); d != throttleFire {
		t.Errorf("after reset: got %v, want fire", d)
	}
}
