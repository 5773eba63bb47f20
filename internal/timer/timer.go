// Package timer provides the pre-session countdown and fixed-duration
// session timer.
package timer

// Timer is a pure function of the monotonic time fed to Tick. The countdown
// starts at 3 and steps once per elapsed second; -1 means live. Exactly one
// of counting down, live, expired holds at any time.
type Timer struct {
	countdown int
	anchorMs  int64
	durationS int
	startMs   int64
	timeLeftS float64
}

func New(durationS int, nowMs int64) *Timer {
	return &Timer{
		countdown: 3,
		anchorMs:  nowMs,
		durationS: durationS,
		timeLeftS: float64(durationS),
	}
}

// Tick advances the timer. The cadence check is time-delta based, so
// calling it twice within the same frame never double-decrements.
func (t *Timer) Tick(nowMs int64) {
	if t.countdown >= 0 {
		if nowMs-t.anchorMs >= 1000 {
			t.countdown--
			t.anchorMs = nowMs
			if t.countdown == -1 {
				t.startMs = nowMs
			}
		}
		return
	}

	left := float64(t.durationS) - float64(nowMs-t.startMs)/1000
	if left < 0 {
		left = 0
	}
	t.timeLeftS = left
}

// Countdown returns the current countdown value; -1 once live.
func (t *Timer) Countdown() int { return t.countdown }

// CountingDown reports whether the pre-session countdown is still running.
func (t *Timer) CountingDown() bool { return t.countdown >= 0 }

// IsLive reports whether the session is running with time remaining.
func (t *Timer) IsLive() bool { return t.countdown < 0 && t.timeLeftS > 0 }

// IsExpired reports whether the session has used up its duration.
func (t *Timer) IsExpired() bool { return t.countdown < 0 && t.timeLeftS <= 0 }

// TimeLeftSeconds returns the remaining live time, clamped at 0.
func (t *Timer) TimeLeftSeconds() float64 { return t.timeLeftS }

// StartTimeMs returns the tick time at which the countdown passed -1.
func (t *Timer) StartTimeMs() int64 { return t.startMs }
