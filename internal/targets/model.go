package targets

import "aimtrainer/internal/physics"

// Kind is the closed category of a target. It controls the scoring weight
// here and the intended visual treatment on the render client.
type Kind string

const (
	KindStandard = Kind("standard")
	KindHeadshot = Kind("headshot")
	KindDecoy    = Kind("decoy")
	KindSwitch   = Kind("switch")
	KindSpike    = Kind("spike")
)

// Points returns the scoring weight for hitting a target of this kind.
func (k Kind) Points() int {
	if k == KindHeadshot {
		return 200
	}
	return 100
}

// Target is a single spawned hit-object. Position is the center of the
// target circle; Size is its diameter in pixels.
type Target struct {
	Kind        Kind          `json:"kind"`
	Pos         physics.Vec2  `json:"pos"`
	Vel         physics.Vec2  `json:"-"`
	Size        float64       `json:"size"`
	LifetimeMs  int64         `json:"-"`
	SpawnTimeMs int64         `json:"-"`
	Hit         bool          `json:"hit"`
	HitTimeMs   int64         `json:"-"`

	// Tracking-mode bookkeeping
	tracked      bool
	trackStartMs int64
	trackedMs    int64
}

// RecordHit marks the target hit once. Re-hitting is a no-op; the first hit
// wins and HitTimeMs never changes afterwards.
func (t *Target) RecordHit(nowMs int64) bool {
	if t.Hit {
		return false
	}
	t.Hit = true
	t.HitTimeMs = nowMs
	return true
}

// ReactionTimeMs returns how long the target was alive before it was hit,
// or 0 if it was never hit.
func (t *Target) ReactionTimeMs() int64 {
	if !t.Hit {
		return 0
	}
	return t.HitTimeMs - t.SpawnTimeMs
}

// Expired reports whether the target outlived its lifetime, hit or not.
func (t *Target) Expired(nowMs int64) bool {
	return nowMs-t.SpawnTimeMs >= t.LifetimeMs
}

// StartTracking begins accumulating tracked time (tracking mode).
func (t *Target) StartTracking(nowMs int64) {
	if t.tracked {
		return
	}
	t.tracked = true
	t.trackStartMs = nowMs
}

// StopTracking closes the current tracking interval.
func (t *Target) StopTracking(nowMs int64) {
	if !t.tracked {
		return
	}
	t.tracked = false
	t.trackedMs += nowMs - t.trackStartMs
}

// Tracked reports whether the reticle is currently over the target.
func (t *Target) Tracked() bool {
	return t.tracked
}

// TrackedMs returns total tracked milliseconds, including any open interval.
func (t *Target) TrackedMs(nowMs int64) int64 {
	total := t.trackedMs
	if t.tracked {
		total += nowMs - t.trackStartMs
	}
	return total
}

// TrackedShare returns the percentage of the target's alive time spent
// under the reticle.
func (t *Target) TrackedShare(nowMs int64) float64 {
	alive := nowMs - t.SpawnTimeMs
	if alive <= 0 {
		return 0
	}
	return float64(t.TrackedMs(nowMs)) / float64(alive) * 100
}
