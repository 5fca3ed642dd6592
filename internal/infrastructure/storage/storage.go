// Package storage provides the string key-value stores that hold level progress.
package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned when a key has never been written
var ErrNotFound = errors.New("storage: key not found")

// MemoryStore keeps values in memory only. Used by tests, by --store memory and
// as the fallback when persistent storage cannot be opened.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string

	// FailWrites makes SetString fail, to exercise best-effort saving
	FailWrites bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// GetString returns the value for key or ErrNotFound
func (s *MemoryStore) GetString(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// SetString stores value under key
func (s *MemoryStore) SetString(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return errors.New("storage: writes disabled")
	}
	s.values[key] = value
	return nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
