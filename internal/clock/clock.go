// Package clock provides the monotonic millisecond time source the game
// runtime polls every frame.
package clock

import "time"

// Clock returns monotonic, non-decreasing milliseconds.
type Clock interface {
	NowMs() int64
}

// Monotonic measures milliseconds since process start using the runtime's
// monotonic clock, so wall-clock jumps never move game time backwards.
type Monotonic struct {
	start time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now()}
}

func (m *Monotonic) NowMs() int64 {
	return time.Since(m.start).Milliseconds()
}

// Manual is a hand-driven clock for tests.
type Manual struct {
	ms int64
}

func NewManual(startMs int64) *Manual {
	return &Manual{ms: startMs}
}

func (m *Manual) NowMs() int64 {
	return m.ms
}

// Advance moves the clock forward by d milliseconds.
func (m *Manual) Advance(d int64) {
	m.ms += d
}

// Set jumps the clock to an absolute millisecond value.
func (m *Manual) Set(ms int64) {
	m.ms = ms
}
