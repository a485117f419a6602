package memory

import (
	"context"
	"sync"

	"eventTicketing/internal/storage"
)

type Storage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func New() *Storage {
	return &Storage{slots: make(map[string][]byte)}
}

func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	s.slots[key] = v
	s.mu.Unlock()

	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.slots, key)
	s.mu.Unlock()

	return nil
}

func (s *Storage) Close() error {
	return nil
}
