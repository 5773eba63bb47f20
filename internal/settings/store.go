package settings

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store loads and persists the settings record.
type Store interface {
	Load() (Settings, error)
	Save(Settings) error
}

// FileStore keeps settings in a YAML file. A missing file yields defaults;
// startup never fails on configuration absence.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() (Settings, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		log.Printf("[Settings] %s not found, using defaults\n", f.path)
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading settings file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing settings file: %w", err)
	}
	return s.Normalize(), nil
}

func (f *FileStore) Save(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating settings dir: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// MemoryStore is an in-process store for tests and ephemeral sessions.
type MemoryStore struct {
	s     Settings
	saved bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Settings, error) {
	if !m.saved {
		return Default(), nil
	}
	return m.s, nil
}

func (m *MemoryStore) Save(s Settings) error {
	m.s = s
	m.saved = true
	return nil
}
