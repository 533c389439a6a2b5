package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists entries in a single JSON file mapping key -> entry,
// mirroring the extension-local storage it replaces. A process-wide mutex
// serializes read-modify-write cycles; writes go through a temp file and
// rename so a crash never leaves a truncated store behind.
type FileStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileStore constructs a file-backed store at path. The file is created
// lazily on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Get returns the value for key. Expired entries are deleted from the file
// as a side effect of the read.
func (s *FileStore) Get(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, false, err
	}
	entry, ok := entries[key]
	if !ok {
		return nil, false, nil
	}
	if entry.Expired(s.now()) {
		delete(entries, key)
		if err := s.flush(entries); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return entry.Value, true, nil
}

// Set stores value under key with the given TTL, overwriting any previous
// entry.
func (s *FileStore) Set(_ context.Context, key string, value json.RawMessage, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries[key] = Entry{Value: value, ExpiresAt: s.now().Add(ttl).UnixMilli()}
	return s.flush(entries)
}

// Delete removes key if present.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.flush(entries)
}

// Clear drops every entry.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.flush(map[string]Entry{})
}

// SetClock overrides the store's clock. Intended for tests.
func (s *FileStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *FileStore) load() (map[string]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]Entry), nil
		}
		return nil, fmt.Errorf("cache: read %s: %w", s.path, err)
	}
	entries := make(map[string]Entry)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("cache: decode %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *FileStore) flush(entries map[string]Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
