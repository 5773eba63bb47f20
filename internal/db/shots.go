package db

import (
	"fmt"
	"time"
)

// ShotEvent is one fired shot, hit or miss, tied to its session.
type ShotEvent struct {
	SessionID  string
	Mode       string
	Difficulty string
	Hit        bool
	TargetKind string
	Points     int
	X          float64
	Y          float64
	ReactionMs int64
	FiredAt    time.Time
}

func (d *DB) RecordShot(ev ShotEvent) error {
	_, err := d.conn.Exec(`
		INSERT INTO shot_events (session_id, mode, difficulty, hit, target_kind, points, shot_x, shot_y, reaction_ms, fired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, ev.SessionID, ev.Mode, ev.Difficulty, ev.Hit, ev.TargetKind, ev.Points, ev.X, ev.Y, ev.ReactionMs, ev.FiredAt)
	if err != nil {
		return fmt.Errorf("recording shot: %w", err)
	}
	return nil
}

// BatchRecordShots writes a telemetry batch in one transaction. Used by the
// buffered shot writer so the play loop never waits on the database.
func (d *DB) BatchRecordShots(events []ShotEvent) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO shot_events (session_id, mode, difficulty, hit, target_kind, points, shot_x, shot_y, reaction_ms, fired_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(ev.SessionID, ev.Mode, ev.Difficulty, ev.Hit, ev.TargetKind, ev.Points, ev.X, ev.Y, ev.ReactionMs, ev.FiredAt); err != nil {
			return fmt.Errorf("recording shot in batch: %w", err)
		}
	}

	return tx.Commit()
}
