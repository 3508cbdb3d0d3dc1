package moderation

import (
	"context"
	"sync"

	"docshelf/pkg/platform/sentinel"
)

// MemoryStore is an in-memory job store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]Job)}
}

func (s *MemoryStore) Create(_ context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; exists {
		return sentinel.ErrDuplicate
	}
	s.jobs[job.ID] = job
	return nil
}

func (s *MemoryStore) Get(_ context.Context, jobID string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return Job{}, sentinel.ErrNotFound
	}
	return job, nil
}

func (s *MemoryStore) Complete(_ context.Context, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.jobs[job.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Status.Terminal() {
		return sentinel.ErrConflict
	}
	s.jobs[job.ID] = job
	return nil
}
