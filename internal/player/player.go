// Package player models the reticle: cursor-following aim point, the
// ammo/reload state machine, and shot resolution against the target
// population.
package player

import (
	"aimtrainer/internal/physics"
	"aimtrainer/internal/targets"
)

const (
	MaxAmmo              = 30
	ReloadTimeMs         = 1500
	HitForgivenessRadius = 8.0
)

type Player struct {
	pos           physics.Vec2
	ammo          int
	reloading     bool
	reloadStartMs int64

	shotsFired int
	shotsHit   int
	headshots  int
}

func New() *Player {
	return &Player{ammo: MaxAmmo}
}

// SetPos moves the reticle to the latest pointer position.
func (p *Player) SetPos(pos physics.Vec2) {
	p.pos = pos
}

func (p *Player) Pos() physics.Vec2 { return p.pos }
func (p *Player) Ammo() int         { return p.ammo }
func (p *Player) Reloading() bool   { return p.reloading }

func (p *Player) ShotsFired() int { return p.shotsFired }
func (p *Player) ShotsHit() int   { return p.shotsHit }
func (p *Player) Headshots() int  { return p.headshots }

// Update completes an in-flight reload once the reload time has elapsed.
// Called once per frame, independent of shooting.
func (p *Player) Update(nowMs int64) {
	if p.reloading && nowMs-p.reloadStartMs >= ReloadTimeMs {
		p.ammo = MaxAmmo
		p.reloading = false
	}
}

// Shoot resolves one shot at the reticle position. While reloading or out
// of ammo it is a silent no-op returning nil; no counters move. An empty
// magazine after the shot auto-starts a reload.
func (p *Player) Shoot(pop *targets.Population, nowMs int64) *targets.Target {
	if p.reloading || p.ammo <= 0 {
		return nil
	}

	p.ammo--
	p.shotsFired++

	hit := pop.CheckHit(p.pos, HitForgivenessRadius, nowMs)
	if hit != nil {
		p.shotsHit++
		if hit.Kind == targets.KindHeadshot {
			p.headshots++
		}
	}

	if p.ammo <= 0 {
		p.Reload(nowMs)
	}
	return hit
}

// Reload starts a reload unless one is running or the magazine is full.
func (p *Player) Reload(nowMs int64) {
	if p.reloading || p.ammo >= MaxAmmo {
		return
	}
	p.reloading = true
	p.reloadStartMs = nowMs
}

// Accuracy returns shotsHit/shotsFired as a percentage, 0 with no shots.
func (p *Player) Accuracy() float64 {
	if p.shotsFired == 0 {
		return 0
	}
	return float64(p.shotsHit) / float64(p.shotsFired) * 100
}
