// Package scores keeps the best-of-session leaderboard: top entries per
// (mode, difficulty), ranked descending and capped.
package scores

import (
	"log"
	"sort"
	"sync"
	"time"
)

// MaxEntries caps each (mode, difficulty) list.
const MaxEntries = 10

const (
	pointsPerHit  = 100
	pointsPerMiss = 50
)

// Entry is one persisted leaderboard row.
type Entry struct {
	Score          int     `json:"score"`
	Accuracy       float64 `json:"accuracy"`
	ReactionTimeMs float64 `json:"reaction_time_ms"`
	TargetsHit     int     `json:"targets_hit"`
	TargetsMissed  int     `json:"targets_missed"`
	Headshots      int     `json:"headshots"`
	Timestamp      string  `json:"timestamp"`
}

// Table is the whole persisted structure: mode → difficulty → ranked entries.
type Table map[string]map[string][]Entry

// SessionStats are the end-of-session aggregates an entry is built from.
type SessionStats struct {
	TargetsHit    int
	TargetsMissed int
	Headshots     int
	Accuracy      float64
	AvgReactionMs float64
}

// NewEntry converts session stats into a leaderboard entry. The score is
// hits scaled up minus misses scaled down; a timestamp is attached for the
// leaderboard display.
func NewEntry(stats SessionStats, now time.Time) Entry {
	return Entry{
		Score:          Score(stats.TargetsHit, stats.TargetsMissed),
		Accuracy:       stats.Accuracy,
		ReactionTimeMs: stats.AvgReactionMs,
		TargetsHit:     stats.TargetsHit,
		TargetsMissed:  stats.TargetsMissed,
		Headshots:      stats.Headshots,
		Timestamp:      now.Format("2006-01-02 15:04"),
	}
}

// Score computes the session score from hit and miss counts.
func Score(hits, misses int) int {
	return hits*pointsPerHit - misses*pointsPerMiss
}

// Board holds the leaderboard table and writes it through a Store on every
// commit. Store failures are logged, never surfaced to gameplay.
type Board struct {
	mu    sync.Mutex
	table Table
	store Store
}

// NewBoard loads the persisted table. A load failure logs and starts empty.
func NewBoard(store Store) *Board {
	table, err := store.Load()
	if err != nil {
		log.Printf("[Scores] load failed: %v (starting with empty leaderboard)\n", err)
		table = Table{}
	}
	if table == nil {
		table = Table{}
	}
	return &Board{table: table, store: store}
}

// Commit inserts an entry, re-ranks the (mode, difficulty) list descending
// by score with a stable sort (ties keep insertion order), truncates to
// MaxEntries, and persists the whole table. The lock is held through the
// save so concurrent commits cannot persist tables out of order.
func (b *Board) Commit(mode, difficulty string, e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.table[mode] == nil {
		b.table[mode] = map[string][]Entry{}
	}
	list := append(b.table[mode][difficulty], e)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	b.table[mode][difficulty] = list

	if err := b.store.Save(b.snapshotLocked()); err != nil {
		log.Printf("[Scores] save failed: %v\n", err)
	}
}

// HighScore returns the top score for a (mode, difficulty) pair, 0 if none.
func (b *Board) HighScore(mode, difficulty string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.table[mode][difficulty]
	if len(list) == 0 {
		return 0
	}
	return list[0].Score
}

// Entries returns a copy of the ranked list for a (mode, difficulty) pair.
func (b *Board) Entries(mode, difficulty string) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.table[mode][difficulty]
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// Snapshot returns a deep copy of the whole table.
func (b *Board) Snapshot() Table {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// snapshotLocked deep-copies the table. Callers must hold mu.
func (b *Board) snapshotLocked() Table {
	out := Table{}
	for mode, byDiff := range b.table {
		out[mode] = map[string][]Entry{}
		for diff, list := range byDiff {
			entries := make([]Entry, len(list))
			copy(entries, list)
			out[mode][diff] = entries
		}
	}
	return out
}
