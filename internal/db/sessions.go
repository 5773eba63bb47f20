package db

import (
	"fmt"
	"time"
)

// SessionResult is the persisted summary of one finished training session.
type SessionResult struct {
	ID            string
	Mode          string
	Difficulty    string
	Score         int
	Accuracy      float64
	TargetsHit    int
	TargetsMissed int
	Headshots     int
	AvgReactionMs float64
	EndedAt       time.Time
}

// RecordSession inserts a finished session and returns its generated id.
func (d *DB) RecordSession(r SessionResult) (string, error) {
	var id string
	err := d.conn.QueryRow(`
		INSERT INTO sessions (mode, difficulty, score, accuracy, targets_hit, targets_missed, headshots, avg_reaction_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, r.Mode, r.Difficulty, r.Score, r.Accuracy, r.TargetsHit, r.TargetsMissed, r.Headshots, r.AvgReactionMs).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("recording session: %w", err)
	}
	return id, nil
}

// TopSessions returns the best sessions for a mode and difficulty, highest
// score first.
func (d *DB) TopSessions(mode, difficulty string, limit int) ([]SessionResult, error) {
	rows, err := d.conn.Query(`
		SELECT id, mode, difficulty, score, accuracy, targets_hit, targets_missed, headshots, avg_reaction_ms, ended_at
		FROM sessions
		WHERE mode = $1 AND difficulty = $2
		ORDER BY score DESC, ended_at ASC
		LIMIT $3
	`, mode, difficulty, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionResult
	for rows.Next() {
		var r SessionResult
		if err := rows.Scan(&r.ID, &r.Mode, &r.Difficulty, &r.Score, &r.Accuracy, &r.TargetsHit, &r.TargetsMissed, &r.Headshots, &r.AvgReactionMs, &r.EndedAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
