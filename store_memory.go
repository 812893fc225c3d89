package main

import (
	"context"
	"sync"
)

// memoryStore implements Store with an in-process map. Used when
// STORE_DRIVER=memory and as the backend for the test suite.
type memoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string]map[string]any)}
}

func (s *memoryStore) Get(_ context.Context, key string) (map[string]any, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	return copyDoc(doc), true, nil
}

func (s *memoryStore) Put(_ context.Context, key string, doc map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[key] = copyDoc(doc)
	return nil
}

func (s *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.docs[key]
	return ok, nil
}

// copyDoc shallow-copies a document so callers cannot mutate stored state.
func copyDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
