package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore persists the key-value map as a single JSON object on disk,
// flushed synchronously after every mutation. A missing or corrupt file
// yields an empty store; a failing flush is logged and the in-memory view
// stays authoritative for the rest of the session.
type FileStore struct {
	path   string
	values map[string]string
	logger func(context.Context, string, map[string]any)
}

// NewFileStore loads (or initialises) the store backed by path. The logger
// follows the service event-logger shape and may be nil.
func NewFileStore(path string, logger func(context.Context, string, map[string]any)) *FileStore {
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	s := &FileStore{
		path:   path,
		values: map[string]string{},
		logger: logger,
	}
	s.load()
	return s
}

func (s *FileStore) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		s.logger(context.Background(), "storage.load_corrupt", map[string]any{
			"path": s.path,
		})
		return
	}
	s.values = values
}

func (s *FileStore) flush() {
	raw, err := json.Marshal(s.values)
	if err != nil {
		s.logger(context.Background(), "storage.flush_failed", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
		return
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		s.logger(context.Background(), "storage.flush_failed", map[string]any{
			"path":  s.path,
			"error": err.Error(),
		})
	}
}

// Get returns the stored value and whether the key exists.
func (s *FileStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Set stores the value under key and flushes to disk.
func (s *FileStore) Set(key, value string) {
	s.values[key] = value
	s.flush()
}

// Remove deletes the key if present and flushes to disk.
func (s *FileStore) Remove(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.flush()
}
