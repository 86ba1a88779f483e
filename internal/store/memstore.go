package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MemStore is an in-memory DocumentStore for tests and local runs.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage

	// FailSet, when non-nil, makes Set return the error for matching
	// paths. Used to exercise persistence-failure paths in tests.
	FailSet func(path string) error
}

func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string]json.RawMessage)}
}

func (s *MemStore) Get(_ context.Context, path string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.docs[path]
	if !ok {
		return nil, nil
	}
	return raw, nil
}

func (s *MemStore) Set(_ context.Context, path string, value any) error {
	if s.FailSet != nil {
		if err := s.FailSet(path); err != nil {
			return err
		}
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[path] = data
	return nil
}

func (s *MemStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, path)
	return nil
}

func (s *MemStore) List(_ context.Context, prefix string) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]json.RawMessage)
	for path, raw := range s.docs {
		if strings.HasPrefix(path, prefix) {
			out[strings.TrimPrefix(path, prefix)] = raw
		}
	}
	return out, nil
}

func (s *MemStore) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for path := range s.docs {
		if strings.HasPrefix(path, prefix) {
			delete(s.docs, path)
		}
	}
	return nil
}
