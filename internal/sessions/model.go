package sessions

import (
	"sync"
	"time"

	"aimtrainer/internal/events"
	"aimtrainer/internal/game"
	"aimtrainer/internal/wshub"
)

// Session is one live training runtime: the game state machine, its input
// queue, and the hub its frames are broadcast to. The loop goroutine is the
// only writer of game state; everything else goes through Inputs.
type Session struct {
	ID        string
	Game      *game.Game
	Hub       *wshub.Hub
	Bus       *events.Bus
	Inputs    chan wshub.ClientMessage
	CreatedAt time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// Apply enqueues a client input for the next frame. Non-blocking: when the
// queue is full the input is dropped rather than stalling the reader.
func (s *Session) Apply(msg wshub.ClientMessage) {
	select {
	case s.Inputs <- msg:
	default:
	}
}

// Stop asks the loop goroutine to exit. Safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// Done is closed when the session has been stopped.
func (s *Session) Done() <-chan struct{} {
	return s.stop
}
