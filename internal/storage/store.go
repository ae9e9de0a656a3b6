// Package storage persists the small per-client state the storefront keeps
// between runs: the active cart token and the last shipping choice. State
// lives in .storefront/state.json as a flat string map.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys.
const (
	KeyCartID   = "cart_id"
	KeyShipping = "shipping"
)

// Store is a mutex-guarded key/value store backed by a JSON file. A missing
// file behaves as an empty store; every mutation writes the file.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// New creates a store rooted at the given workspace directory.
func New(workspace string) *Store {
	return &Store{
		path:   filepath.Join(workspace, ".storefront", "state.json"),
		values: make(map[string]string),
	}
}

// Load reads state from disk. A missing file leaves the store empty.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.values = make(map[string]string)
			return nil
		}
		return fmt.Errorf("failed to read state: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse state: %w", err)
	}
	s.values = values
	return nil
}

// Get returns the value for key, or "" when absent.
func (s *Store) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set stores a value and persists immediately.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

// Remove deletes a key and persists immediately. Removing an absent key is a
// no-op that still succeeds.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
