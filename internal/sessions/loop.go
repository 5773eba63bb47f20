package sessions

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"aimtrainer/internal/clock"
	"aimtrainer/internal/game"
	"aimtrainer/internal/physics"
	"aimtrainer/internal/wshub"
)

// run is the fixed-timestep frame loop: drain inputs, advance the game,
// broadcast the snapshot, then sleep out the rest of the frame budget.
// Exits when the session is stopped or the game quits.
func (s *Session) run(clk clock.Clock, tickRate int) {
	frame := time.Second / time.Duration(tickRate)

	defer s.Hub.Close()
	defer s.Stop()

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		start := time.Now()
		now := clk.NowMs()

		s.drainInputs(now)
		s.Game.Update(now)

		if !s.Game.Running() {
			log.Printf("[Session] %s quit\n", s.ID)
			return
		}

		s.broadcastFrame()

		if elapsed := time.Since(start); elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}
}

// drainInputs applies every queued input against the current frame time.
func (s *Session) drainInputs(nowMs int64) {
	for {
		select {
		case msg := <-s.Inputs:
			s.apply(msg, nowMs)
		default:
			return
		}
	}
}

func (s *Session) apply(msg wshub.ClientMessage, nowMs int64) {
	switch msg.Type {
	case wshub.MsgMove:
		s.Game.PointerMoved(vec(msg.X, msg.Y), nowMs)
	case wshub.MsgShoot:
		s.Game.PointerDown(vec(msg.X, msg.Y), nowMs)
	case wshub.MsgKey:
		s.Game.KeyDown(gameKey(msg.Key), nowMs)
	case wshub.MsgAction:
		s.Game.MenuAction(msg.Action, nowMs)
	case wshub.MsgSettings:
		if msg.Settings != nil {
			s.Game.UpdateSettingsDraft(*msg.Settings)
		}
	}
}

func vec(x, y float64) physics.Vec2 {
	return physics.Vec2{X: x, Y: y}
}

// gameKey normalizes client key names; browsers report "Escape", " ", "r".
func gameKey(k string) game.Key {
	switch k {
	case " ", "Space", "space":
		return game.KeySpace
	default:
		return game.Key(strings.ToLower(k))
	}
}

func (s *Session) broadcastFrame() {
	if s.Hub.Count() == 0 {
		return
	}
	data, err := json.Marshal(s.Game.Snapshot())
	if err != nil {
		log.Printf("[Session] %s snapshot marshal: %v\n", s.ID, err)
		return
	}
	s.Hub.Broadcast(data)
}
