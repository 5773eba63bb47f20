// Package sessions owns the lifecycle of training sessions: creation,
// lookup, the per-session frame loop, and reaping abandoned runtimes.
package sessions

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"aimtrainer/internal/clock"
	"aimtrainer/internal/events"
	"aimtrainer/internal/game"
	"aimtrainer/internal/scores"
	"aimtrainer/internal/settings"
	"aimtrainer/internal/wshub"
)

const staleTTL = 1 * time.Hour

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg      game.Config
	tickRate int
	board    *scores.Board
	settings settings.Store
	clk      clock.Clock
	onShot   func(sessionID string, shot game.Shot)
}

// NewStore creates the session registry. The board and settings store are
// shared across all sessions; each session gets its own game runtime.
func NewStore(cfg game.Config, tickRate int, board *scores.Board, st settings.Store) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		tickRate: tickRate,
		board:    board,
		settings: st,
		clk:      clock.NewMonotonic(),
	}
	go s.sweepStale()
	return s
}

// SetShotHook installs the telemetry sink applied to every session created
// afterwards. Must be called before Create.
func (s *Store) SetShotHook(fn func(sessionID string, shot game.Shot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onShot = fn
}

// Create builds a session and starts its loop goroutine.
func (s *Store) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	bus := events.NewBus()
	g := game.New(s.cfg, bus, s.board, s.settings, rand.New(rand.NewSource(time.Now().UnixNano())))

	if s.onShot != nil {
		hook := s.onShot
		g.SetShotHook(func(shot game.Shot) {
			hook(id, shot)
		})
	}

	sess := &Session{
		ID:        id,
		Game:      g,
		Hub:       wshub.NewHub(),
		Bus:       bus,
		Inputs:    make(chan wshub.ClientMessage, 64),
		CreatedAt: time.Now(),
		stop:      make(chan struct{}),
	}
	s.sessions[id] = sess

	go sess.run(s.clk, s.tickRate)
	return sess
}

func (s *Store) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

// Delete stops a session's loop and removes it from the registry.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	sess := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if sess != nil {
		sess.Stop()
	}
}

func (s *Store) List() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		list = append(list, sess)
	}
	return list
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		s.mu.Lock()
		now := time.Now()
		var stale []*Session
		for id, sess := range s.sessions {
			if now.Sub(sess.CreatedAt) > staleTTL {
				stale = append(stale, sess)
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()

		for _, sess := range stale {
			sess.Stop()
		}
	}
}
