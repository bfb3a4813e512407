// Package memstore хранит ключи сессии в памяти процесса.
// Используется, когда сессию не нужно переживать перезапуск, и в тестах.
package memstore

import (
	"context"
	"sync"
)

// Store map под мьютексом.
type Store struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New создаёт пустое хранилище.
func New() *Store {
	return &Store{entries: map[string]string{}}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.entries[key]
	return val, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Len количество ключей.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
