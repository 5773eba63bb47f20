package targets

import (
	"math"
	"math/rand"

	"aimtrainer/internal/physics"
)

// Global target parameter ranges, scaled per difficulty.
const (
	MaxTargets = 8

	SizeMin = 25.0
	SizeMax = 50.0

	SpeedMin = 1.5
	SpeedMax = 4.0

	LifetimeMinMs = 1500
	LifetimeMaxMs = 3500
)

// Bounds is the logical screen area targets live in.
type Bounds struct {
	Width  float64
	Height float64
}

// Population owns the live targets for one session: spawn cadence,
// bounce-in-bounds movement, lifetime expiry, hit testing, and the
// per-session counters. It is mutated only by the session loop goroutine.
type Population struct {
	mode         Mode
	difficulty   Difficulty
	mods         Modifiers
	spawnDelayMs int64
	lastSpawnMs  int64
	live         []*Target
	rng          *rand.Rand

	spawned       int
	hit           int
	missed        int
	headshots     int
	reactionTimes []int64
}

// NewPopulation creates an empty population for a mode and difficulty.
// The rand source is injected so spawn policy is reproducible in tests.
func NewPopulation(mode Mode, difficulty Difficulty, rng *rand.Rand) *Population {
	mods := ModifiersFor(difficulty)
	return &Population{
		mode:         mode,
		difficulty:   difficulty,
		mods:         mods,
		spawnDelayMs: int64(math.Round(float64(LifetimeMinMs) * mods.SpawnRate)),
		rng:          rng,
	}
}

func (p *Population) Mode() Mode             { return p.mode }
func (p *Population) Difficulty() Difficulty { return p.difficulty }
func (p *Population) SpawnDelayMs() int64    { return p.spawnDelayMs }

// Live returns the live target slice. Callers must not mutate it; iteration
// order is stable insertion order.
func (p *Population) Live() []*Target { return p.live }

// kindForMode resolves the spawn type by the mode-specific policy.
func (p *Population) kindForMode() Kind {
	switch p.mode {
	case ModeFlick:
		if p.rng.Float64() < 0.2 {
			return KindHeadshot
		}
		return KindStandard
	case ModeTracking:
		return KindStandard
	case ModeSwitch:
		return KindSwitch
	case ModeSpike:
		if p.rng.Float64() < 0.3 {
			return KindSpike
		}
		return KindDecoy
	default:
		return KindStandard
	}
}

// Spawn creates one target with difficulty-scaled random parameters.
// At MaxTargets the spawn is dropped silently and nil is returned.
func (p *Population) Spawn(nowMs int64, bounds Bounds) *Target {
	if len(p.live) >= MaxTargets {
		return nil
	}

	size := (SizeMin + p.rng.Float64()*(SizeMax-SizeMin)) * p.mods.Size
	lifetime := int64(float64(LifetimeMinMs+p.rng.Int63n(LifetimeMaxMs-LifetimeMinMs+1)) * p.mods.Lifetime)
	speed := (SpeedMin + p.rng.Float64()*(SpeedMax-SpeedMin)) * p.mods.Speed

	t := &Target{
		Kind:        p.kindForMode(),
		Size:        size,
		LifetimeMs:  lifetime,
		SpawnTimeMs: nowMs,
		// Padding of one target size keeps the spawn fully visible.
		Pos: physics.Vec2{
			X: size + p.rng.Float64()*(bounds.Width-2*size),
			Y: size + p.rng.Float64()*(bounds.Height-2*size),
		},
		// Per-axis uniform draw in [-speed, speed]. The magnitude is not
		// uniform in speed; that distribution is intentional.
		Vel: physics.Vec2{
			X: -speed + p.rng.Float64()*2*speed,
			Y: -speed + p.rng.Float64()*2*speed,
		},
	}

	p.live = append(p.live, t)
	p.spawned++
	return t
}

// SpawnFixed places a target with caller-supplied parameters. Used for the
// deterministic paths (tests, scripted drills). The population cap still
// applies.
func (p *Population) SpawnFixed(kind Kind, pos physics.Vec2, size float64, lifetimeMs, nowMs int64) *Target {
	if len(p.live) >= MaxTargets {
		return nil
	}
	t := &Target{
		Kind:        kind,
		Pos:         pos,
		Size:        size,
		LifetimeMs:  lifetimeMs,
		SpawnTimeMs: nowMs,
	}
	p.live = append(p.live, t)
	p.spawned++
	return t
}

// Update advances the population one frame: spawn on cadence, move un-hit
// targets with an elastic edge bounce, and drop expired targets.
func (p *Population) Update(nowMs int64, bounds Bounds) {
	if nowMs-p.lastSpawnMs > p.spawnDelayMs {
		p.Spawn(nowMs, bounds)
		p.lastSpawnMs = nowMs
	}

	kept := p.live[:0]
	for _, t := range p.live {
		if !t.Hit {
			t.Pos = t.Pos.Add(t.Vel)

			// Reflect on edge crossing. The target may overshoot the bound
			// by one frame's travel before the flipped velocity pulls it back.
			half := t.Size / 2
			if t.Pos.X-half < 0 || t.Pos.X+half > bounds.Width {
				t.Vel.X = -t.Vel.X
			}
			if t.Pos.Y-half < 0 || t.Pos.Y+half > bounds.Height {
				t.Vel.Y = -t.Vel.Y
			}
		}

		if t.Expired(nowMs) {
			continue
		}
		kept = append(kept, t)
	}
	p.live = kept
}

// CheckHit scans live, un-hit targets in insertion order and resolves a shot
// at pos. The first target within size/2 + hitRadius of its center wins; no
// nearest-target tie-break. A miss increments the missed counter and
// returns nil.
func (p *Population) CheckHit(pos physics.Vec2, hitRadius float64, nowMs int64) *Target {
	for _, t := range p.live {
		if t.Hit {
			continue
		}
		if physics.PointInCircle(pos, t.Pos, t.Size/2+hitRadius) {
			t.RecordHit(nowMs)
			// A hit target is skipped by UpdateTracking, so close any
			// open tracking interval here.
			t.StopTracking(nowMs)
			p.hit++
			p.reactionTimes = append(p.reactionTimes, t.ReactionTimeMs())
			if t.Kind == KindHeadshot {
				p.headshots++
			}
			return t
		}
	}
	p.missed++
	return nil
}

// UpdateTracking opens and closes tracking intervals based on whether the
// reticle sits on each un-hit target (tracking mode).
func (p *Population) UpdateTracking(cursor physics.Vec2, nowMs int64) {
	for _, t := range p.live {
		if t.Hit {
			continue
		}
		if physics.PointInCircle(cursor, t.Pos, t.Size/2) {
			t.StartTracking(nowMs)
		} else {
			t.StopTracking(nowMs)
		}
	}
}

func (p *Population) Spawned() int       { return p.spawned }
func (p *Population) TargetsHit() int    { return p.hit }
func (p *Population) TargetsMissed() int { return p.missed }
func (p *Population) Headshots() int     { return p.headshots }

// ReactionTimes returns a copy of the recorded reaction times.
func (p *Population) ReactionTimes() []int64 {
	out := make([]int64, len(p.reactionTimes))
	copy(out, p.reactionTimes)
	return out
}

// Accuracy returns hit/(hit+missed) as a percentage, 0 with no shots.
func (p *Population) Accuracy() float64 {
	total := p.hit + p.missed
	if total == 0 {
		return 0
	}
	return float64(p.hit) / float64(total) * 100
}

// AvgReactionMs returns the mean recorded reaction time, 0 with none.
func (p *Population) AvgReactionMs() float64 {
	if len(p.reactionTimes) == 0 {
		return 0
	}
	var sum int64
	for _, rt := range p.reactionTimes {
		sum += rt
	}
	return float64(sum) / float64(len(p.reactionTimes))
}

// Clear removes all live targets.
func (p *Population) Clear() {
	p.live = p.live[:0]
}

// ResetStats zeroes every session counter.
func (p *Population) ResetStats() {
	p.spawned = 0
	p.hit = 0
	p.missed = 0
	p.headshots = 0
	p.reactionTimes = p.reactionTimes[:0]
}
