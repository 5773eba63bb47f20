package sessions

import (
	"encoding/json"
	"testing"
	"time"

	"aimtrainer/internal/game"
	"aimtrainer/internal/scores"
	"aimtrainer/internal/settings"
	"aimtrainer/internal/wshub"
)

func newTestStore() *Store {
	return NewStore(
		game.DefaultConfig(),
		120,
		scores.NewBoard(scores.NewMemoryStore()),
		settings.NewMemoryStore(),
	)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestCreateGetDelete(t *testing.T) {
	store := newTestStore()

	sess := store.Create()
	if sess.ID == "" {
		t.Fatal("Create() returned session with empty ID")
	}
	if store.Get(sess.ID) != sess {
		t.Error("Get() did not return the created session")
	}
	if len(store.List()) != 1 {
		t.Errorf("List() = %d sessions, want 1", len(store.List()))
	}

	store.Delete(sess.ID)
	if store.Get(sess.ID) != nil {
		t.Error("Get() should return nil after Delete()")
	}
	if len(store.List()) != 0 {
		t.Errorf("List() = %d sessions after delete, want 0", len(store.List()))
	}
}

func TestDeleteStopsLoop(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	c := &wshub.Client{ID: "viewer", Send: make(chan []byte, 256)}
	sess.Hub.Register(c)

	store.Delete(sess.ID)

	// The exiting loop closes the hub, which closes every Send channel
	waitFor(t, "hub to close", func() bool {
		for {
			select {
			case _, ok := <-c.Send:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	})
}

func TestLoopBroadcastsSnapshots(t *testing.T) {
	store := newTestStore()
	sess := store.Create()
	defer store.Delete(sess.ID)

	c := &wshub.Client{ID: "viewer", Send: make(chan []byte, 256)}
	sess.Hub.Register(c)

	select {
	case data := <-c.Send:
		var snap game.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			t.Fatalf("unmarshal frame: %v", err)
		}
		if snap.State != game.StateMenu {
			t.Errorf("first frame state = %q, want %q", snap.State, game.StateMenu)
		}
		if snap.Menu != game.MenuMain {
			t.Errorf("first frame menu = %q, want %q", snap.Menu, game.MenuMain)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame broadcast")
	}
}

func TestInputsDriveTheGame(t *testing.T) {
	store := newTestStore()
	sess := store.Create()
	defer store.Delete(sess.ID)

	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: game.ActionStartTraining})
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: "flick"})
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: "medium"})

	waitFor(t, "game to start playing", func() bool {
		return sess.Game.State() == game.StatePlaying
	})
}

func TestQuitEndsTheLoop(t *testing.T) {
	store := newTestStore()
	sess := store.Create()

	c := &wshub.Client{ID: "viewer", Send: make(chan []byte, 256)}
	sess.Hub.Register(c)

	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: game.ActionQuit})

	waitFor(t, "game to stop", func() bool {
		return !sess.Game.Running()
	})
	waitFor(t, "hub to close", func() bool {
		for {
			select {
			case _, ok := <-c.Send:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	})
}

func TestApplyDropsWhenQueueFull(t *testing.T) {
	// A detached session; nothing drains the queue
	sess := &Session{Inputs: make(chan wshub.ClientMessage, 2)}
	for i := 0; i < 10; i++ {
		sess.Apply(wshub.ClientMessage{Type: wshub.MsgMove, X: float64(i)})
	}
	if len(sess.Inputs) != 2 {
		t.Errorf("queued inputs = %d, want 2", len(sess.Inputs))
	}
}

func TestStopIsIdempotent(t *testing.T) {
	sess := &Session{stop: make(chan struct{})}
	sess.Stop()
	sess.Stop() // must not panic
}

func TestShotHookReceivesSessionID(t *testing.T) {
	store := newTestStore()

	got := make(chan string, 16)
	store.SetShotHook(func(sessionID string, shot game.Shot) {
		got <- sessionID
	})

	sess := store.Create()
	defer store.Delete(sess.ID)

	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: game.ActionStartTraining})
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: "flick"})
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: "medium"})
	waitFor(t, "game to start playing", func() bool {
		return sess.Game.State() == game.StatePlaying
	})

	// Wait out the countdown, then fire a shot somewhere
	waitFor5s := time.Now().Add(5 * time.Second)
	for time.Now().Before(waitFor5s) {
		if sess.Game.Snapshot().Countdown == -1 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgShoot, X: 512, Y: 384})

	select {
	case id := <-got:
		if id != sess.ID {
			t.Errorf("hook session id = %q, want %q", id, sess.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("shot hook not invoked")
	}
}

func TestSettingsEditedOverTheWire(t *testing.T) {
	store := newTestStore()
	sess := store.Create()
	defer store.Delete(sess.ID)

	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: game.ActionSettings})
	waitFor(t, "settings screen", func() bool {
		return sess.Game.State() == game.StateSettings
	})

	draft := sess.Game.Settings()
	draft.Fullscreen = !draft.Fullscreen
	draft.CrosshairStyle = settings.StyleCircle
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgSettings, Settings: &draft})
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: game.ActionSaveAndExit})

	waitFor(t, "return to menu", func() bool {
		return sess.Game.State() == game.StateMenu
	})

	got := sess.Game.Settings()
	if got.CrosshairStyle != settings.StyleCircle {
		t.Errorf("crosshair style = %q, want %q", got.CrosshairStyle, settings.StyleCircle)
	}
	if got.Fullscreen != draft.Fullscreen {
		t.Error("fullscreen flip was not applied")
	}

	fx := sess.Game.LastEffects()
	if !fx.NeedsDisplayReset {
		t.Error("fullscreen flip should report a display reset")
	}
	if !fx.NeedsNewCrosshair {
		t.Error("crosshair change should be reported")
	}
	if snap := sess.Game.Snapshot(); snap.Effects != fx {
		t.Errorf("snapshot effects = %+v, want %+v", snap.Effects, fx)
	}
}

func TestSettingsMessageWithoutPayloadIsIgnored(t *testing.T) {
	store := newTestStore()
	sess := store.Create()
	defer store.Delete(sess.ID)

	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: game.ActionSettings})
	waitFor(t, "settings screen", func() bool {
		return sess.Game.State() == game.StateSettings
	})

	before := sess.Game.Settings()
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgSettings})
	sess.Apply(wshub.ClientMessage{Type: wshub.MsgAction, Action: game.ActionSaveAndExit})
	waitFor(t, "return to menu", func() bool {
		return sess.Game.State() == game.StateMenu
	})

	if got := sess.Game.Settings(); got != before {
		t.Errorf("settings changed by empty payload: %+v", got)
	}
}

func TestGameKey(t *testing.T) {
	cases := map[string]game.Key{
		"Escape": game.KeyEscape,
		"escape": game.KeyEscape,
		"r":      game.KeyR,
		"R":      game.KeyR,
		" ":      game.KeySpace,
		"Space":  game.KeySpace,
	}
	for in, want := range cases {
		if got := gameKey(in); got != want {
			t.Errorf("gameKey(%q) = %q, want %q", in, got, want)
		}
	}
}
