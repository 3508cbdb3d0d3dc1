package document

import (
	"context"
	"sync"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[domain.DocumentID]Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[domain.DocumentID]Document)}
}

func (s *MemoryStore) Create(_ context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.ID]; exists {
		return sentinel.ErrDuplicate
	}
	s.docs[doc.ID] = doc
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id domain.DocumentID) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return Document{}, sentinel.ErrNotFound
	}
	return doc, nil
}

func (s *MemoryStore) Update(_ context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.docs[doc.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != doc.Version {
		return sentinel.ErrConflict
	}
	doc.Version++
	s.docs[doc.ID] = doc
	return nil
}

func (s *MemoryStore) ListByStatus(_ context.Context, status Status) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Document
	for _, doc := range s.docs {
		if doc.Status == status {
			out = append(out, doc)
		}
	}
	return out, nil
}
