package evergreen

// TimerHandle identifies a scheduled timer. The zero handle never matches a
// live timer.
type TimerHandle struct {
	gen uint64
}

// Valid reports whether h was returned by a successful After call.
func (h TimerHandle) Valid() bool { return h.gen != 0 }

type timerEntry struct {
	gen uint64
	at  float64
	fn  func()
}

// Timers is a one-shot timer queue driven by the frame clock. Nothing fires
// outside Advance, so callbacks always run inside the frame that owns the
// state they touch. Each timer carries a generation number; cancelling a
// timer drops its generation, so a stale handle can never fire or cancel a
// newer timer.
type Timers struct {
	now     float64
	gen     uint64
	entries []timerEntry
}

// Now returns the clock value of the last Advance.
func (ts *Timers) Now() float64 { return ts.now }

// Pending returns the number of scheduled timers.
func (ts *Timers) Pending() int { return len(ts.entries) }

// After schedules fn to run once the clock has advanced delay seconds past
// the current time.
func (ts *Timers) After(delay float64, fn func()) TimerHandle {
	if fn == nil {
		return TimerHandle{}
	}
	ts.gen++
	ts.entries = append(ts.entries, timerEntry{gen: ts.gen, at: ts.now + max(delay, 0), fn: fn})
	return TimerHandle{gen: ts.gen}
}

// Cancel removes the timer identified by h. It reports whether a pending
// timer was removed.
func (ts *Timers) Cancel(h TimerHandle) bool {
	if !h.Valid() {
		return false
	}
	for i := range ts.entries {
		if ts.entries[i].gen == h.gen {
			ts.entries = append(ts.entries[:i], ts.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Scheduled reports whether h is still pending.
func (ts *Timers) Scheduled(h TimerHandle) bool {
	if !h.Valid() {
		return false
	}
	for i := range ts.entries {
		if ts.entries[i].gen == h.gen {
			return true
		}
	}
	return false
}

// Advance moves the clock to now and runs every timer that has come due, in
// scheduling order. It returns the number of timers fired. Timers scheduled
// by a callback are not considered until the next Advance.
func (ts *Timers) Advance(now float64) int {
	if now > ts.now {
		ts.now = now
	}
	horizon := ts.gen
	fired := 0
	for i := 0; i < len(ts.entries); {
		e := ts.entries[i]
		if e.gen > horizon || e.at > ts.now {
			i++
			continue
		}
		ts.entries = append(ts.entries[:i], ts.entries[i+1:]...)
		e.fn()
		fired++
		// A callback may have cancelled entries before i; rescan from the start.
		i = 0
	}
	return fired
}

// Reset drops every pending timer.
func (ts *Timers) Reset() {
	ts.entries = ts.entries[:0]
}
