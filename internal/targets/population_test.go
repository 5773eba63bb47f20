package targets

import (
	"math/rand"
	"testing"

	"aimtrainer/internal/physics"
)

var testBounds = Bounds{Width: 1024, Height: 768}

func newTestPopulation(mode Mode, difficulty Difficulty) *Population {
	return NewPopulation(mode, difficulty, rand.New(rand.NewSource(1)))
}

func TestSpawnDelay_PerDifficulty(t *testing.T) {
	want := map[Difficulty]int64{
		DifficultyEasy:    1050,
		DifficultyMedium:  1500,
		DifficultyHard:    1950,
		DifficultyExtreme: 2550,
	}
	for d, delay := range want {
		p := newTestPopulation(ModeFlick, d)
		if p.SpawnDelayMs() != delay {
			t.Errorf("spawn delay for %s = %d, want %d", d, p.SpawnDelayMs(), delay)
		}
	}
}

func TestSpawn_Cap(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	for i := 0; i < MaxTargets+5; i++ {
		p.Spawn(0, testBounds)
	}
	if len(p.Live()) != MaxTargets {
		t.Errorf("live targets = %d, want %d", len(p.Live()), MaxTargets)
	}
	if p.Spawned() != MaxTargets {
		t.Errorf("spawned counter = %d, want %d (capped spawns are dropped)", p.Spawned(), MaxTargets)
	}
	if p.Spawn(0, testBounds) != nil {
		t.Error("Spawn at cap should return nil")
	}
}

func TestSpawn_ParametersInRange(t *testing.T) {
	p := newTestPopulation(ModeTracking, DifficultyMedium)
	for i := 0; i < MaxTargets; i++ {
		tgt := p.Spawn(1000, testBounds)
		if tgt == nil {
			t.Fatal("Spawn() returned nil below cap")
		}
		if tgt.Kind != KindStandard {
			t.Errorf("tracking mode kind = %q, want %q", tgt.Kind, KindStandard)
		}
		if tgt.Size < SizeMin || tgt.Size > SizeMax {
			t.Errorf("size = %v, out of [%v, %v]", tgt.Size, SizeMin, SizeMax)
		}
		if tgt.LifetimeMs < LifetimeMinMs || tgt.LifetimeMs > LifetimeMaxMs {
			t.Errorf("lifetime = %d, out of [%d, %d]", tgt.LifetimeMs, LifetimeMinMs, LifetimeMaxMs)
		}
		// Fully visible: padding of one target size on each edge
		if tgt.Pos.X < tgt.Size || tgt.Pos.X > testBounds.Width-tgt.Size {
			t.Errorf("spawn X = %v outside padded bounds", tgt.Pos.X)
		}
		if tgt.Pos.Y < tgt.Size || tgt.Pos.Y > testBounds.Height-tgt.Size {
			t.Errorf("spawn Y = %v outside padded bounds", tgt.Pos.Y)
		}
		maxSpeed := SpeedMax // medium multiplier is 1.0
		if tgt.Vel.X < -maxSpeed || tgt.Vel.X > maxSpeed || tgt.Vel.Y < -maxSpeed || tgt.Vel.Y > maxSpeed {
			t.Errorf("velocity %v outside per-axis [-%v, %v]", tgt.Vel, maxSpeed, maxSpeed)
		}
		if tgt.SpawnTimeMs != 1000 {
			t.Errorf("spawn time = %d, want 1000", tgt.SpawnTimeMs)
		}
	}
}

func TestSpawn_ModePolicy(t *testing.T) {
	// Switch mode always spawns switch targets
	p := newTestPopulation(ModeSwitch, DifficultyMedium)
	for i := 0; i < MaxTargets; i++ {
		if tgt := p.Spawn(0, testBounds); tgt.Kind != KindSwitch {
			t.Errorf("switch mode kind = %q, want %q", tgt.Kind, KindSwitch)
		}
	}

	// Flick mode spawns headshots with p=0.2; over many draws both kinds appear
	kinds := map[Kind]int{}
	p = newTestPopulation(ModeFlick, DifficultyMedium)
	for i := 0; i < 200; i++ {
		tgt := p.Spawn(0, testBounds)
		kinds[tgt.Kind]++
		p.Clear()
	}
	if kinds[KindHeadshot] == 0 || kinds[KindStandard] == 0 {
		t.Errorf("flick mode kinds = %v, want both standard and headshot", kinds)
	}
	if kinds[KindHeadshot] > kinds[KindStandard] {
		t.Errorf("flick mode headshots (%d) should be rarer than standard (%d)", kinds[KindHeadshot], kinds[KindStandard])
	}

	// Spike mode spawns only spike or decoy
	p = newTestPopulation(ModeSpike, DifficultyMedium)
	for i := 0; i < 50; i++ {
		tgt := p.Spawn(0, testBounds)
		if tgt.Kind != KindSpike && tgt.Kind != KindDecoy {
			t.Errorf("spike mode kind = %q, want spike or decoy", tgt.Kind)
		}
		p.Clear()
	}
}

func TestUpdate_SpawnCadence(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)

	p.Update(0, testBounds)
	if len(p.Live()) != 0 {
		t.Fatalf("no spawn expected before the delay elapses, got %d", len(p.Live()))
	}

	p.Update(p.SpawnDelayMs()+1, testBounds)
	if len(p.Live()) != 1 {
		t.Fatalf("one spawn expected after the delay, got %d", len(p.Live()))
	}

	// Anchor resets: an immediate second update must not spawn again
	p.Update(p.SpawnDelayMs()+2, testBounds)
	if len(p.Live()) != 1 {
		t.Errorf("second spawn before next delay, got %d targets", len(p.Live()))
	}
}

func TestUpdate_PopulationNeverExceedsCap(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyExtreme)
	now := int64(0)
	for i := 0; i < 500; i++ {
		now += p.SpawnDelayMs() + 1
		p.Update(now, testBounds)
		if len(p.Live()) > MaxTargets {
			t.Fatalf("live targets = %d, exceeds cap %d", len(p.Live()), MaxTargets)
		}
	}
}

func TestUpdate_MovementAndBounce(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	tgt := p.SpawnFixed(KindStandard, physics.Vec2{X: 100, Y: 100}, 40, 10000, 0)
	tgt.Vel = physics.Vec2{X: 3, Y: -2}

	p.Update(1, testBounds)
	if (tgt.Pos != physics.Vec2{X: 103, Y: 98}) {
		t.Errorf("pos after update = %v, want {103 98}", tgt.Pos)
	}

	// Push the target against the left edge; X velocity must reflect
	tgt.Pos = physics.Vec2{X: 21, Y: 300}
	tgt.Vel = physics.Vec2{X: -5, Y: 0}
	p.Update(2, testBounds)
	if tgt.Vel.X != 5 {
		t.Errorf("Vel.X after bounce = %v, want 5", tgt.Vel.X)
	}
}

func TestUpdate_HitTargetDoesNotMove(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	tgt := p.SpawnFixed(KindStandard, physics.Vec2{X: 100, Y: 100}, 40, 10000, 0)
	tgt.Vel = physics.Vec2{X: 3, Y: 3}
	tgt.RecordHit(1)

	p.Update(2, testBounds)
	if (tgt.Pos != physics.Vec2{X: 100, Y: 100}) {
		t.Errorf("hit target moved to %v", tgt.Pos)
	}
	if len(p.Live()) != 1 {
		t.Error("hit target should stay live until lifetime expiry")
	}
}

func TestUpdate_LifetimeExpiry(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	p.SpawnFixed(KindStandard, physics.Vec2{X: 100, Y: 100}, 40, 2000, 0)
	hit := p.SpawnFixed(KindStandard, physics.Vec2{X: 300, Y: 300}, 40, 2000, 0)
	hit.RecordHit(500)

	p.Update(1999, testBounds)
	if len(p.Live()) != 2 {
		t.Fatalf("targets before expiry = %d, want 2", len(p.Live()))
	}

	p.Update(2000, testBounds)
	if len(p.Live()) != 0 {
		t.Errorf("targets at expiry = %d, want 0 (hit or not)", len(p.Live()))
	}
}

func TestCheckHit_Scenario(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	p.SpawnFixed(KindStandard, physics.Vec2{X: 100, Y: 100}, 40, 10000, 0)

	// distance ≈ 5.83 < 20 + 8
	hit := p.CheckHit(physics.Vec2{X: 105, Y: 103}, 8, 250)
	if hit == nil {
		t.Fatal("shot at (105,103) should hit a size-40 target at (100,100)")
	}
	if !hit.Hit {
		t.Error("returned target should be marked hit")
	}
	if hit.ReactionTimeMs() != 250 {
		t.Errorf("reaction time = %d, want 250", hit.ReactionTimeMs())
	}

	if miss := p.CheckHit(physics.Vec2{X: 150, Y: 150}, 8, 300); miss != nil {
		t.Error("shot at (150,150) should miss")
	}

	if p.TargetsHit() != 1 || p.TargetsMissed() != 1 {
		t.Errorf("hit/missed = %d/%d, want 1/1", p.TargetsHit(), p.TargetsMissed())
	}
}

func TestCheckHit_NeverReturnsHitTarget(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	first := p.SpawnFixed(KindStandard, physics.Vec2{X: 100, Y: 100}, 40, 10000, 0)
	second := p.SpawnFixed(KindStandard, physics.Vec2{X: 102, Y: 102}, 40, 10000, 0)

	got := p.CheckHit(physics.Vec2{X: 100, Y: 100}, 8, 100)
	if got != first {
		t.Fatal("first target in insertion order should win")
	}
	got = p.CheckHit(physics.Vec2{X: 100, Y: 100}, 8, 200)
	if got != second {
		t.Error("second shot should resolve against the remaining un-hit target")
	}
	if got = p.CheckHit(physics.Vec2{X: 100, Y: 100}, 8, 300); got != nil {
		t.Error("both targets hit; further shots must miss")
	}
	if first.HitTimeMs != 100 {
		t.Errorf("first hit time = %d, want 100 (first hit wins)", first.HitTimeMs)
	}
}

func TestCheckHit_ClosesTrackingInterval(t *testing.T) {
	p := newTestPopulation(ModeTracking, DifficultyMedium)
	tgt := p.SpawnFixed(KindStandard, physics.Vec2{X: 100, Y: 100}, 40, 10000, 0)

	p.UpdateTracking(physics.Vec2{X: 100, Y: 100}, 500)
	if !tgt.Tracked() {
		t.Fatal("reticle on target should open a tracking interval")
	}

	if hit := p.CheckHit(physics.Vec2{X: 100, Y: 100}, 8, 1200); hit != tgt {
		t.Fatal("shot on the tracked target should hit it")
	}
	if tgt.Tracked() {
		t.Error("hit target should no longer be tracked")
	}
	if got := tgt.TrackedMs(5000); got != 700 {
		t.Errorf("TrackedMs after hit = %d, want 700 (interval closed at the hit)", got)
	}
}

func TestCheckHit_Headshots(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	p.SpawnFixed(KindHeadshot, physics.Vec2{X: 50, Y: 50}, 30, 10000, 0)

	p.CheckHit(physics.Vec2{X: 50, Y: 50}, 8, 100)
	if p.Headshots() != 1 {
		t.Errorf("headshots = %d, want 1", p.Headshots())
	}
}

func TestAccuracy(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	if p.Accuracy() != 0 {
		t.Errorf("accuracy with no shots = %v, want 0", p.Accuracy())
	}

	for i := 0; i < 3; i++ {
		p.SpawnFixed(KindStandard, physics.Vec2{X: 100, Y: 100}, 40, 10000, 0)
		p.CheckHit(physics.Vec2{X: 100, Y: 100}, 8, int64(100*i))
		p.Clear()
	}
	p.CheckHit(physics.Vec2{X: 900, Y: 700}, 8, 400)

	if p.Accuracy() != 75.0 {
		t.Errorf("accuracy with 3 hits / 1 miss = %v, want 75.0", p.Accuracy())
	}
}

func TestAvgReactionMs(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	if p.AvgReactionMs() != 0 {
		t.Errorf("avg reaction with no hits = %v, want 0", p.AvgReactionMs())
	}

	times := []int64{120, 150, 100}
	for _, rt := range times {
		p.SpawnFixed(KindStandard, physics.Vec2{X: 100, Y: 100}, 40, 10000, 0)
		p.CheckHit(physics.Vec2{X: 100, Y: 100}, 8, rt)
		p.Clear()
	}

	want := (120.0 + 150.0 + 100.0) / 3.0
	if got := p.AvgReactionMs(); got != want {
		t.Errorf("avg reaction = %v, want %v", got, want)
	}
}

func TestResetStats(t *testing.T) {
	p := newTestPopulation(ModeFlick, DifficultyMedium)
	p.SpawnFixed(KindHeadshot, physics.Vec2{X: 100, Y: 100}, 40, 10000, 0)
	p.CheckHit(physics.Vec2{X: 100, Y: 100}, 8, 100)
	p.CheckHit(physics.Vec2{X: 900, Y: 700}, 8, 200)

	p.ResetStats()

	if p.Spawned() != 0 || p.TargetsHit() != 0 || p.TargetsMissed() != 0 || p.Headshots() != 0 {
		t.Error("counters should all be zero after reset")
	}
	if len(p.ReactionTimes()) != 0 {
		t.Error("reaction times should be empty after reset")
	}
}
