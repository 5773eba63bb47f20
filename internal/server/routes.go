package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"aimtrainer/internal/config"
	"aimtrainer/internal/db"
	"aimtrainer/internal/game"
	"aimtrainer/internal/scores"
	"aimtrainer/internal/sessions"
	"aimtrainer/internal/settings"
)

func Run() error {
	appCfg := config.Load()

	if err := os.MkdirAll(appCfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	settingsStore := settings.NewFileStore(filepath.Join(appCfg.DataDir, "settings.yaml"))
	board := scores.NewBoard(scores.NewFileStore(filepath.Join(appCfg.DataDir, "scores.json")))

	gameCfg := game.DefaultConfig()
	gameCfg.SessionSeconds = appCfg.SessionSeconds
	sessionStore := sessions.NewStore(gameCfg, appCfg.TickRate, board, settingsStore)

	srv := &Server{
		Sessions: sessionStore,
		Board:    board,
		Settings: settingsStore,
	}

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			srv.ShotBuffer = make(chan db.ShotEvent, 1000)
			go shotBatchWriter(database, srv.ShotBuffer)
			sessionStore.SetShotHook(srv.bufferShot)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, srv.routes())
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleSessionState)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/{id}/ws", s.handleSessionWS)
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /settings", s.handleSettings)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// bufferShot turns a game shot into a telemetry row and queues it for the
// batch writer. Non-blocking: telemetry is dropped before play is stalled.
func (s *Server) bufferShot(sessionID string, shot game.Shot) {
	ev := db.ShotEvent{
		SessionID:  sessionID,
		Mode:       shot.Mode,
		Difficulty: shot.Difficulty,
		Hit:        shot.Hit,
		TargetKind: string(shot.Kind),
		Points:     shot.Points,
		X:          shot.Pos.X,
		Y:          shot.Pos.Y,
		ReactionMs: shot.ReactionMs,
		FiredAt:    time.Now(),
	}
	select {
	case s.ShotBuffer <- ev:
	default:
	}
}

func shotBatchWriter(database *db.DB, buffer chan db.ShotEvent) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]db.ShotEvent, 0, 50)

	for {
		select {
		case ev := <-buffer:
			batch = append(batch, ev)
			if len(batch) >= 50 {
				if err := database.BatchRecordShots(batch); err != nil {
					log.Printf("[DB] BatchRecordShots error: %v\n", err)
				}
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				if err := database.BatchRecordShots(batch); err != nil {
					log.Printf("[DB] BatchRecordShots error: %v\n", err)
				}
				batch = batch[:0]
			}
		}
	}
}
