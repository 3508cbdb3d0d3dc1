package review

import (
	"context"
	"sort"
	"sync"
	"time"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
)

type pairKey struct {
	document domain.DocumentID
	reviewer domain.UserID
}

// MemoryRequestStore is an in-memory RequestStore for development and tests.
type MemoryRequestStore struct {
	mu       sync.RWMutex
	requests map[domain.ReviewRequestID]ReviewRequest
	byPair   map[pairKey]domain.ReviewRequestID
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{
		requests: make(map[domain.ReviewRequestID]ReviewRequest),
		byPair:   make(map[pairKey]domain.ReviewRequestID),
	}
}

func (s *MemoryRequestStore) Create(_ context.Context, r ReviewRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := pairKey{document: r.DocumentID, reviewer: r.ReviewerID}
	if _, exists := s.byPair[key]; exists {
		return sentinel.ErrDuplicate
	}
	s.requests[r.ID] = r
	s.byPair[key] = r.ID
	return nil
}

func (s *MemoryRequestStore) Get(_ context.Context, id domain.ReviewRequestID) (ReviewRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return ReviewRequest{}, sentinel.ErrNotFound
	}
	return r, nil
}

func (s *MemoryRequestStore) GetByPair(_ context.Context, documentID domain.DocumentID, reviewerID domain.UserID) (ReviewRequest, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPair[pairKey{document: documentID, reviewer: reviewerID}]
	if !ok {
		return ReviewRequest{}, false, nil
	}
	return s.requests[id], true, nil
}

func (s *MemoryRequestStore) Update(_ context.Context, r ReviewRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.requests[r.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != r.Version {
		return sentinel.ErrConflict
	}
	r.Version++
	s.requests[r.ID] = r
	return nil
}

func (s *MemoryRequestStore) ListByDocument(_ context.Context, documentID domain.DocumentID) ([]ReviewRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ReviewRequest
	for _, r := range s.requests {
		if r.DocumentID == documentID {
			out = append(out, r)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (s *MemoryRequestStore) ListByReviewer(_ context.Context, reviewerID domain.UserID) ([]ReviewRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ReviewRequest
	for _, r := range s.requests {
		if r.ReviewerID == reviewerID {
			out = append(out, r)
		}
	}
	sortByCreation(out)
	return out, nil
}

func (s *MemoryRequestStore) ListOverdue(_ context.Context, now time.Time) ([]ReviewRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ReviewRequest
	for _, r := range s.requests {
		if !r.Status.Terminal() && r.EffectiveStatus(now) == RequestExpired {
			out = append(out, r)
		}
	}
	sortByCreation(out)
	return out, nil
}

func sortByCreation(requests []ReviewRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.Before(requests[j].CreatedAt)
	})
}

// MemoryReviewStore is an in-memory ReviewStore for development and tests.
type MemoryReviewStore struct {
	mu      sync.RWMutex
	reviews map[domain.ReviewID]DocumentReview
}

func NewMemoryReviewStore() *MemoryReviewStore {
	return &MemoryReviewStore{reviews: make(map[domain.ReviewID]DocumentReview)}
}

func (s *MemoryReviewStore) Create(_ context.Context, review DocumentReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reviews {
		if existing.RequestID == review.RequestID {
			return sentinel.ErrDuplicate
		}
	}
	s.reviews[review.ID] = review
	return nil
}

func (s *MemoryReviewStore) GetByRequest(_ context.Context, requestID domain.ReviewRequestID) (DocumentReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, review := range s.reviews {
		if review.RequestID == requestID {
			return review, nil
		}
	}
	return DocumentReview{}, sentinel.ErrNotFound
}

func (s *MemoryReviewStore) ListByDocument(_ context.Context, documentID domain.DocumentID) ([]DocumentReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []DocumentReview
	for _, review := range s.reviews {
		if review.DocumentID == documentID {
			out = append(out, review)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
