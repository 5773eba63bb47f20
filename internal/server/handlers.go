package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"aimtrainer/internal/db"
	"aimtrainer/internal/scores"
	"aimtrainer/internal/sessions"
	"aimtrainer/internal/settings"
	"aimtrainer/internal/wshub"
)

type Server struct {
	Sessions   *sessions.Store
	Board      *scores.Board
	Settings   settings.Store
	DB         *db.DB            // nil if no database configured
	ShotBuffer chan db.ShotEvent // nil if no database configured
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Handle] encoding response: %v\n", err)
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	log.Println("[Handle:CreateSession] Request Received")

	sess := s.Sessions.Create()
	go s.recordSessionEnds(sess)

	writeJSON(w, http.StatusCreated, map[string]string{"id": sess.ID})
}

// recordSessionEnds drains the session's end events into the database.
// Exits with the session, or immediately when no database is configured.
func (s *Server) recordSessionEnds(sess *sessions.Session) {
	if s.DB == nil {
		return
	}
	for {
		select {
		case <-sess.Done():
			return
		case ev := <-sess.Bus.SessionEnds:
			snap := sess.Game.Snapshot()
			_, err := s.DB.RecordSession(db.SessionResult{
				Mode:          ev.Mode,
				Difficulty:    ev.Difficulty,
				Score:         ev.Score,
				Accuracy:      snap.HUD.Accuracy,
				TargetsHit:    snap.HUD.TargetsHit,
				TargetsMissed: snap.HUD.TargetsMissed,
				Headshots:     snap.HUD.Headshots,
				AvgReactionMs: snap.HUD.AvgReactionMs,
			})
			if err != nil {
				log.Printf("[DB] RecordSession error: %v\n", err)
			}
		}
	}
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	sess := s.Sessions.Get(r.PathValue("id"))
	if sess == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sess.Game.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if s.Sessions.Get(id) == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	s.Sessions.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionWS attaches a WebSocket client to a session: snapshots out,
// inputs in.
func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	sess := s.Sessions.Get(r.PathValue("id"))
	if sess == nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[Handle:SessionWS] accept: %v\n", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	client := &wshub.Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	sess.Hub.Register(client)
	defer sess.Hub.Unregister(client.ID)

	ctx := r.Context()
	go client.WritePump(ctx)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg wshub.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[Handle:SessionWS] bad message: %v\n", err)
			continue
		}
		sess.Apply(msg)
	}
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	difficulty := r.URL.Query().Get("difficulty")

	if mode == "" && difficulty == "" {
		writeJSON(w, http.StatusOK, s.Board.Snapshot())
		return
	}
	if mode == "" || difficulty == "" {
		http.Error(w, "mode and difficulty are required together", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.Board.Entries(mode, difficulty))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Settings.Load()
	if err != nil {
		log.Printf("[Handle:Settings] load: %v\n", err)
		rec = settings.Default()
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.DB != nil {
		if err := s.DB.Ping(); err != nil {
			status["database"] = "down"
		} else {
			status["database"] = "up"
		}
	}
	writeJSON(w, http.StatusOK, status)
}
