package scores

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Store persists the whole leaderboard table atomically.
type Store interface {
	Load() (Table, error)
	Save(Table) error
}

// FileStore keeps the table in a JSON file. A missing file yields an empty
// table, not an error.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (Table, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		log.Printf("[Scores] %s not found, starting empty\n", f.path)
		return Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading scores file: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing scores file: %w", err)
	}
	return table, nil
}

// Save writes the table to a temp file and renames it into place, so a
// crash mid-write never truncates the previous leaderboard.
func (f *FileStore) Save(table Table) error {
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scores: %w", err)
	}
	dir := filepath.Dir(f.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating scores dir: %w", err)
		}
	}
	tmp, err := os.CreateTemp(dir, "scores-*.json")
	if err != nil {
		return fmt.Errorf("creating temp scores file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing scores file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing scores file: %w", err)
	}
	return nil
}

// MemoryStore is an in-process store for tests and ephemeral sessions.
type MemoryStore struct {
	table Table
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Table, error) {
	if m.table == nil {
		return Table{}, nil
	}
	return m.table, nil
}

func (m *MemoryStore) Save(table Table) error {
	m.table = table
	return nil
}
