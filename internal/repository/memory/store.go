package memory

import (
	"context"
	"sync"

	"github.com/dtroode/gophkeeper-profile/internal/model"
)

var _ model.KeyValueStore = (*Store)(nil)

// Store is an in-memory key-value store. Contents are lost on exit.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{values: map[string]string{}}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	value, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return "", model.ErrNotFound
	}
	return value, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()
	return nil
}

// Has reports whether key is present.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}
