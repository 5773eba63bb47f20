// Package game holds the top-level session state machine: menu navigation,
// countdown and play phases, pause handling, and the end-of-session score
// commit. All timing is polled; Update is called once per frame by the
// session loop with the current monotonic time.
package game

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"aimtrainer/internal/events"
	"aimtrainer/internal/physics"
	"aimtrainer/internal/player"
	"aimtrainer/internal/scores"
	"aimtrainer/internal/settings"
	"aimtrainer/internal/targets"
	"aimtrainer/internal/timer"
)

type State string

const (
	StateMenu        = State("menu")
	StatePlaying     = State("playing") // countdown + live sub-phases
	StatePaused      = State("paused")
	StateGameOver    = State("game_over")
	StateSettings    = State("settings")
	StateLeaderboard = State("leaderboard")
)

// MenuScreen is the active menu surface. Navigation uses an explicit stack
// of return-to screens instead of back-pointers between menu objects.
type MenuScreen string

const (
	MenuMain             = MenuScreen("main")
	MenuModeSelect       = MenuScreen("mode_select")
	MenuDifficultySelect = MenuScreen("difficulty_select")
)

type Config struct {
	SessionSeconds int
	Width          float64
	Height         float64
}

func DefaultConfig() Config {
	return Config{
		SessionSeconds: 60,
		Width:          1024,
		Height:         768,
	}
}

// Shot describes one resolved shot for the telemetry hook.
type Shot struct {
	Mode       string
	Difficulty string
	Hit        bool
	Kind       targets.Kind
	Points     int
	Pos        physics.Vec2
	ReactionMs int64
}

// Game owns one player's whole runtime. The mutex exists so HTTP and ws
// readers can snapshot consistently; all mutation happens on the session
// loop goroutine.
type Game struct {
	mu            sync.Mutex
	cfg           Config
	bounds        targets.Bounds
	bus           *events.Bus
	board         *scores.Board
	settingsStore settings.Store
	rng           *rand.Rand
	onShot        func(Shot)

	state     State
	menu      MenuScreen
	menuStack []MenuScreen
	running   bool

	mode        targets.Mode
	difficulty  targets.Difficulty
	pendingMode targets.Mode

	pop    *targets.Population
	player *player.Player
	timer  *timer.Timer
	cursor physics.Vec2

	settings    settings.Settings
	draft       settings.Settings
	lastEffects settings.Effects
}

func New(cfg Config, bus *events.Bus, board *scores.Board, store settings.Store, rng *rand.Rand) *Game {
	s, err := store.Load()
	if err != nil {
		log.Printf("[Game] settings load failed: %v (using defaults)\n", err)
		s = settings.Default()
	}
	return &Game{
		cfg:           cfg,
		bounds:        targets.Bounds{Width: cfg.Width, Height: cfg.Height},
		bus:           bus,
		board:         board,
		settingsStore: store,
		rng:           rng,
		state:         StateMenu,
		menu:          MenuMain,
		running:       true,
		settings:      s,
	}
}

// SetShotHook installs the telemetry callback invoked for every fired shot.
func (g *Game) SetShotHook(fn func(Shot)) {
	g.mu.Lock()
	g.onShot = fn
	g.mu.Unlock()
}

func (g *Game) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) Menu() MenuScreen {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.menu
}

// setState transitions and publishes the change. Callers hold the mutex.
func (g *Game) setState(to State) {
	if g.state == to {
		return
	}
	from := g.state
	g.state = to
	select {
	case g.bus.StateChanges <- events.StateChangeEvent{From: string(from), To: string(to)}:
	default:
		// No listener; the bus is advisory
	}
}

// startGame is the sole constructor of a fresh population, player and
// session timer. Nothing leaks between sessions.
func (g *Game) startGame(mode targets.Mode, difficulty targets.Difficulty, nowMs int64) {
	g.mode = mode
	g.difficulty = difficulty
	g.pop = targets.NewPopulation(mode, difficulty, g.rng)
	g.player = player.New()
	g.timer = timer.New(g.cfg.SessionSeconds, nowMs)
	g.menuStack = nil
	g.menu = MenuMain
	g.setState(StatePlaying)
}

// Update advances the runtime one frame.
func (g *Game) Update(nowMs int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StatePlaying {
		return
	}

	g.timer.Tick(nowMs)
	if g.timer.CountingDown() {
		return
	}

	g.player.Update(nowMs)
	g.pop.Update(nowMs, g.bounds)

	if g.mode == targets.ModeTracking {
		g.pop.UpdateTracking(g.cursor, nowMs)
	}

	if g.timer.IsExpired() {
		g.commitScore()
		g.setState(StateGameOver)
	}
}

// commitScore converts the session stats into a leaderboard entry. Callers
// hold the mutex.
func (g *Game) commitScore() {
	stats := scores.SessionStats{
		TargetsHit:    g.pop.TargetsHit(),
		TargetsMissed: g.pop.TargetsMissed(),
		Headshots:     g.pop.Headshots(),
		Accuracy:      g.pop.Accuracy(),
		AvgReactionMs: g.pop.AvgReactionMs(),
	}
	entry := scores.NewEntry(stats, time.Now())
	g.board.Commit(string(g.mode), string(g.difficulty), entry)

	select {
	case g.bus.SessionEnds <- events.SessionEndEvent{
		Mode:       string(g.mode),
		Difficulty: string(g.difficulty),
		Score:      entry.Score,
	}:
	default:
	}
}

// applySettings swaps the draft in at the save transition, persists it and
// records the effects for the outer layers. Callers hold the mutex.
func (g *Game) applySettings() {
	newSettings := g.draft.Normalize()
	g.lastEffects = settings.Apply(g.settings, newSettings)
	g.settings = newSettings
	if err := g.settingsStore.Save(newSettings); err != nil {
		log.Printf("[Game] settings save failed: %v\n", err)
	}
}

// Settings returns the active settings record.
func (g *Game) Settings() settings.Settings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.settings
}

// LastEffects reports what the most recent settings save requires.
func (g *Game) LastEffects() settings.Effects {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastEffects
}
