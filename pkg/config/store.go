package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// storeVersion is stamped into every config file for future migrations.
const storeVersion = "1.0"

// Store persists section data between runs.
type Store interface {
	// Load reads the backing file into memory. A missing file loads as
	// an empty store.
	Load() error

	// Save writes the in-memory data back to disk.
	Save() error

	// GetSection returns a copy of the stored data for sectionID, empty
	// when the section was never saved.
	GetSection(sectionID string) (map[string]interface{}, error)

	// SetSection stages data under sectionID; Save persists it.
	SetSection(sectionID string, data map[string]interface{}) error
}

// storeFile is the on-disk JSON document layout.
type storeFile struct {
	Version  string                            `json:"version"`
	Sections map[string]map[string]interface{} `json:"sections"`
}

// FileStore is a JSON-file Store. The whole document is rewritten on
// every Save through a temp file and an atomic rename, so a crash never
// leaves a half-written config behind.
type FileStore struct {
	mu       sync.RWMutex
	path     string
	sections map[string]map[string]interface{}
}

// DefaultConfigPath returns ~/.aimodesearch/config.json.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".aimodesearch", "config.json"), nil
}

// NewFileStore opens a store at path, falling back to the default
// location when path is empty. An existing file is loaded immediately;
// a missing one is not an error.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	store := &FileStore{
		path:     path,
		sections: make(map[string]map[string]interface{}),
	}
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load replaces the in-memory sections with the file contents.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.sections = make(map[string]map[string]interface{})
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var doc storeFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}
	if doc.Sections == nil {
		doc.Sections = make(map[string]map[string]interface{})
	}
	s.sections = doc.Sections
	return nil
}

// Save writes the current sections to disk, creating the config
// directory when needed.
func (s *FileStore) Save() error {
	s.mu.RLock()
	doc := storeFile{Version: storeVersion, Sections: s.sections}
	raw, err := json.MarshalIndent(doc, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// GetSection returns a copy so callers cannot mutate stored data.
func (s *FileStore) GetSection(sectionID string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySection(s.sections[sectionID]), nil
}

// SetSection stages a copy of data under sectionID.
func (s *FileStore) SetSection(sectionID string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sections[sectionID] = copySection(data)
	return nil
}

func copySection(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
