package evergreen

import "testing"

func TestTimersFireOnce(t *testing.T) {
	var ts Timers
	calls := 0
	h := ts.After(1, func() { calls++ })
	if !h.Valid() || !ts.Scheduled(h) {
		t.Fatal("handle should be valid and scheduled")
	}

	if n := ts.Advance(0.99); n != 0 || calls != 0 {
		t.Fatalf("fired early: n=%d calls=%d", n, calls)
	}
	if n := ts.Advance(1); n != 1 || calls != 1 {
		t.Fatalf("Advance(1) fired %d, calls=%d; want 1", n, calls)
	}
	ts.Advance(5)
	if calls != 1 {
		t.Errorf("timer fired %d times, want once", calls)
	}
	if ts.Scheduled(h) || ts.Pending() != 0 {
		t.Error("fired timer should no longer be scheduled")
	}
}

func TestTimersCancel(t *testing.T) {
	var ts Timers
	fired := false
	h := ts.After(1, func() { fired = true })
	if !ts.Cancel(h) {
		t.Fatal("Cancel should report removal")
	}
	if ts.Cancel(h) {
		t.Error("second Cancel should report nothing removed")
	}
	ts.Advance(10)
	if fired {
		t.Error("cancelled timer fired")
	}
}

func TestTimersStaleHandle(t *testing.T) {
	var ts Timers
	old := ts.After(1, func() {})
	ts.Advance(1)

	fired := false
	fresh := ts.After(1, func() { fired = true })
	if ts.Cancel(old) {
		t.Error("a stale handle must not cancel a newer timer")
	}
	if !ts.Scheduled(fresh) {
		t.Fatal("fresh timer should still be scheduled")
	}
	ts.Advance(2)
	if !fired {
		t.Error("fresh timer should fire")
	}
}

func TestTimersOrder(t *testing.T) {
	var ts Timers
	var order []int
	ts.After(0.5, func() { order = append(order, 1) })
	ts.After(0.2, func() { order = append(order, 2) })
	ts.After(0.5, func() { order = append(order, 3) })
	ts.Advance(1)
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("fire order = %v, want scheduling order [1 2 3]", order)
	}
}

func TestTimersScheduledFromCallbackWaits(t *testing.T) {
	var ts Timers
	inner := false
	ts.After(0, func() {
		ts.After(0, func() { inner = true })
	})
	if n := ts.Advance(1); n != 1 {
		t.Fatalf("Advance fired %d, want 1", n)
	}
	if inner {
		t.Fatal("timer scheduled by a callback fired in the same Advance")
	}
	ts.Advance(1)
	if !inner {
		t.Error("timer scheduled by a callback should fire on the next Advance")
	}
}

func TestTimersClockNeverRewinds(t *testing.T) {
	var ts Timers
	ts.Advance(5)
	ts.Advance(3)
	assertNear(t, "Now", ts.Now(), 5)
	fired := false
	ts.After(1, func() { fired = true })
	ts.Advance(5.5)
	if fired {
		t.Error("delay is relative to the latest clock value")
	}
}

func TestTimersReset(t *testing.T) {
	var ts Timers
	ts.After(1, func() { t.Error("reset timer fired") })
	ts.After(2, func() { t.Error("reset timer fired") })
	ts.Reset()
	if ts.Pending() != 0 {
		t.Errorf("Pending = %d after Reset", ts.Pending())
	}
	ts.Advance(10)
}

func TestTimerHandleZero(t *testing.T) {
	var ts Timers
	var h TimerHandle
	if h.Valid() || ts.Scheduled(h) || ts.Cancel(h) {
		t.Error("zero handle must never match")
	}
	if ts.After(1, nil).Valid() {
		t.Error("nil callback should not be scheduled")
	}
}
