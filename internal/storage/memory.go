package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// InMemory stores objects in process memory. Development and test use only.
type InMemory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewInMemory() *InMemory {
	return &InMemory{objects: make(map[string][]byte)}
}

func (s *InMemory) Put(_ context.Context, key string, r io.Reader, _ PutOptions) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read object %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return key, nil
}

func (s *InMemory) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[key]; !ok {
		return "", fmt.Errorf("object %s not found", key)
	}
	return "memory://" + key, nil
}

func (s *InMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Object returns the stored bytes for assertions in tests.
func (s *InMemory) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}
