// Package memory implements the settings store in process memory.
package memory

import (
	"context"
	"sync"
)

// Store keeps settings in a map guarded by a mutex. Values are lost on exit.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[string]map[string]string)}
}

func (s *Store) Get(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[scope][key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(scope, key, value)
	return nil
}

func (s *Store) Delete(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data[scope], key)
	if len(s.data[scope]) == 0 {
		delete(s.data, scope)
	}
	return nil
}

// Update applies fn to the current value while holding the write lock.
func (s *Store) Update(_ context.Context, scope, key string, fn func(current string, ok bool) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.data[scope][key]
	next, err := fn(cur, ok)
	if err != nil {
		return err
	}
	s.setLocked(scope, key, next)
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) setLocked(scope, key, value string) {
	m, ok := s.data[scope]
	if !ok {
		m = make(map[string]string)
		s.data[scope] = m
	}
	m[key] = value
}
