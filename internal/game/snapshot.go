package game

import (
	"aimtrainer/internal/scores"
	"aimtrainer/internal/settings"
	"aimtrainer/internal/targets"
)

// TargetView is the read-only target projection for render clients.
type TargetView struct {
	Kind    targets.Kind `json:"kind"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Size    float64      `json:"size"`
	Hit     bool         `json:"hit"`
	Tracked bool         `json:"tracked,omitempty"`
}

// HUD is the per-frame stats block shown during play and on game over.
type HUD struct {
	Score         int     `json:"score"`
	Accuracy      float64 `json:"accuracy"`
	TargetsHit    int     `json:"targets_hit"`
	TargetsMissed int     `json:"targets_missed"`
	Headshots     int     `json:"headshots"`
	AvgReactionMs float64 `json:"avg_reaction_ms"`
	HighScore     int     `json:"high_score"`
}

// Snapshot is the full read-only frame the render client draws from.
// Drawing itself never happens here.
type Snapshot struct {
	State      State             `json:"state"`
	Menu       MenuScreen        `json:"menu,omitempty"`
	Mode       string            `json:"mode,omitempty"`
	Difficulty string            `json:"difficulty,omitempty"`
	Countdown  int               `json:"countdown"`
	TimeLeftS  float64           `json:"time_left_s"`
	Targets    []TargetView      `json:"targets,omitempty"`
	Ammo       int               `json:"ammo"`
	Reloading  bool              `json:"reloading"`
	HUD        HUD               `json:"hud"`
	Settings   settings.Settings `json:"settings"`
	Effects    settings.Effects  `json:"effects"`
}

// Snapshot captures the current frame for rendering.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		State:    g.state,
		Settings: g.settings,
		Effects:  g.lastEffects,
	}

	if g.state == StateMenu {
		snap.Menu = g.menu
	}

	if g.pop == nil {
		return snap
	}

	snap.Mode = string(g.mode)
	snap.Difficulty = string(g.difficulty)
	snap.Countdown = g.timer.Countdown()
	snap.TimeLeftS = g.timer.TimeLeftSeconds()
	snap.Ammo = g.player.Ammo()
	snap.Reloading = g.player.Reloading()

	live := g.pop.Live()
	snap.Targets = make([]TargetView, 0, len(live))
	for _, t := range live {
		snap.Targets = append(snap.Targets, TargetView{
			Kind:    t.Kind,
			X:       t.Pos.X,
			Y:       t.Pos.Y,
			Size:    t.Size,
			Hit:     t.Hit,
			Tracked: t.Tracked(),
		})
	}

	snap.HUD = HUD{
		Score:         scores.Score(g.pop.TargetsHit(), g.pop.TargetsMissed()),
		Accuracy:      g.pop.Accuracy(),
		TargetsHit:    g.pop.TargetsHit(),
		TargetsMissed: g.pop.TargetsMissed(),
		Headshots:     g.pop.Headshots(),
		AvgReactionMs: g.pop.AvgReactionMs(),
		HighScore:     g.board.HighScore(string(g.mode), string(g.difficulty)),
	}
	return snap
}
