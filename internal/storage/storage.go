// Package storage persists the agent's state documents as whole JSON files.
// Each document is loaded once at startup and rewritten after every
// mutation; there is no incremental format.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store loads and saves a single JSON-serializable document.
type Store interface {
	// Load unmarshals the stored document into v. A missing document
	// returns an error satisfying errors.Is(err, os.ErrNotExist).
	Load(v any) error
	// Save marshals v and replaces the stored document.
	Save(v any) error
}

// FileStore keeps one document in a JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore writing to path. Parent directories are
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and unmarshals the document.
func (s *FileStore) Load(v any) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return nil
}

// Save marshals v with indentation and rewrites the file.
func (s *FileStore) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// MemStore keeps the document in memory. Used in tests and dry runs.
type MemStore struct {
	data  []byte
	saves int
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load unmarshals the last saved document into v.
func (s *MemStore) Load(v any) error {
	if s.data == nil {
		return os.ErrNotExist
	}
	return json.Unmarshal(s.data, v)
}

// Save marshals v and keeps it in memory.
func (s *MemStore) Save(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *MemStore) Saves() int { return s.saves }
