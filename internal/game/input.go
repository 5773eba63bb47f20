package game

import (
	"aimtrainer/internal/physics"
	"aimtrainer/internal/settings"
	"aimtrainer/internal/targets"
)

// Key codes the state machine reacts to. Anything else is a no-op.
type Key string

const (
	KeyEscape = Key("escape")
	KeyR      = Key("r")
	KeyM      = Key("m")
	KeyQ      = Key("q")
	KeySpace  = Key("space")
)

// Menu action strings, as emitted by the client's buttons.
const (
	ActionStartTraining = "Start Training"
	ActionSettings      = "Settings"
	ActionLeaderboard   = "Leaderboard"
	ActionQuit          = "Quit"
	ActionBack          = "Back"
	ActionSaveAndExit   = "Save and Exit"
)

// PointerMoved updates the reticle with the latest pointer position.
func (g *Game) PointerMoved(pos physics.Vec2, nowMs int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cursor = pos
	if g.state == StatePlaying {
		g.player.SetPos(pos)
	}
}

// PointerDown resolves a primary-button press. During live play it is a
// shot; everywhere else the client handles its own button hit-testing and
// reports menu actions instead.
func (g *Game) PointerDown(pos physics.Vec2, nowMs int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying || g.timer.CountingDown() {
		return
	}

	g.cursor = pos
	g.player.SetPos(pos)

	firedBefore := g.player.ShotsFired()
	hit := g.player.Shoot(g.pop, nowMs)
	if g.player.ShotsFired() == firedBefore {
		return // blocked: reloading or empty
	}

	if g.onShot != nil {
		shot := Shot{
			Mode:       string(g.mode),
			Difficulty: string(g.difficulty),
			Hit:        hit != nil,
			Pos:        pos,
		}
		if hit != nil {
			shot.Kind = hit.Kind
			shot.Points = hit.Kind.Points()
			shot.ReactionMs = hit.ReactionTimeMs()
		}
		g.onShot(shot)
	}
}

// KeyDown routes a key press by the current state. Unrecognized keys are
// silently ignored.
func (g *Game) KeyDown(key Key, nowMs int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch key {
	case KeyEscape:
		g.handleEscape(nowMs)
	case KeyR:
		switch g.state {
		case StatePlaying:
			if !g.timer.CountingDown() {
				g.player.Reload(nowMs)
			}
		case StatePaused:
			// Restart the same mode and difficulty with fresh stats
			g.startGame(g.mode, g.difficulty, nowMs)
		}
	case KeyM:
		if g.state == StatePaused {
			// Session discarded, nothing is committed
			g.menu = MenuMain
			g.menuStack = nil
			g.setState(StateMenu)
		}
	case KeyQ:
		if g.state == StatePaused {
			g.running = false
		}
	case KeySpace:
		if g.state == StateGameOver {
			g.menu = MenuMain
			g.menuStack = nil
			g.setState(StateMenu)
		}
	}
}

// handleEscape implements the per-state Esc behavior. Callers hold the
// mutex.
func (g *Game) handleEscape(nowMs int64) {
	switch g.state {
	case StatePlaying:
		if !g.timer.CountingDown() {
			g.setState(StatePaused)
		}
	case StatePaused:
		// Resume with no time adjustment; the session timer is pure wall time
		g.setState(StatePlaying)
	case StateMenu:
		g.popMenu()
	case StateSettings:
		g.applySettings()
		g.menu = MenuMain
		g.menuStack = nil
		g.setState(StateMenu)
	case StateLeaderboard:
		g.menu = MenuMain
		g.menuStack = nil
		g.setState(StateMenu)
	}
}

// MenuAction handles a button action reported by the client. Unrecognized
// actions are no-ops.
func (g *Game) MenuAction(action string, nowMs int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateMenu:
		g.menuAction(action, nowMs)
	case StateSettings:
		if action == ActionSaveAndExit {
			g.applySettings()
			g.menu = MenuMain
			g.menuStack = nil
			g.setState(StateMenu)
		}
	case StateLeaderboard:
		if action == ActionBack {
			g.menu = MenuMain
			g.menuStack = nil
			g.setState(StateMenu)
		}
	}
}

// menuAction routes actions within the menu state. Callers hold the mutex.
func (g *Game) menuAction(action string, nowMs int64) {
	switch g.menu {
	case MenuMain:
		switch action {
		case ActionStartTraining:
			g.pushMenu(MenuModeSelect)
		case ActionSettings:
			g.draft = g.settings
			g.setState(StateSettings)
		case ActionLeaderboard:
			g.setState(StateLeaderboard)
		case ActionQuit:
			g.running = false
		}
	case MenuModeSelect:
		if action == ActionBack {
			g.popMenu()
			return
		}
		if mode := targets.Mode(action); targets.ValidMode(mode) {
			g.pendingMode = mode
			g.pushMenu(MenuDifficultySelect)
		}
	case MenuDifficultySelect:
		if action == ActionBack {
			g.popMenu()
			return
		}
		if d := targets.Difficulty(action); targets.ValidDifficulty(d) {
			g.startGame(g.pendingMode, d, nowMs)
		}
	}
}

// UpdateSettingsDraft records in-progress edits on the settings screen.
// Nothing takes effect until the save transition.
func (g *Game) UpdateSettingsDraft(s settings.Settings) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateSettings {
		g.draft = s
	}
}

func (g *Game) pushMenu(next MenuScreen) {
	g.menuStack = append(g.menuStack, g.menu)
	g.menu = next
}

func (g *Game) popMenu() {
	if len(g.menuStack) == 0 {
		return
	}
	g.menu = g.menuStack[len(g.menuStack)-1]
	g.menuStack = g.menuStack[:len(g.menuStack)-1]
}
