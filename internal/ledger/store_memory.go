package ledger

import (
	"context"
	"sort"
	"sync"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
)

// MemoryStore is an in-memory ledger for development and tests. One mutex
// guards balances and redemptions together, which trivially gives Redeem its
// required atomicity.
type MemoryStore struct {
	mu          sync.Mutex
	balances    map[domain.UserID]int
	redemptions map[redemptionKey]Redemption
}

type redemptionKey struct {
	reader   domain.UserID
	document domain.DocumentID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		balances:    make(map[domain.UserID]int),
		redemptions: make(map[redemptionKey]Redemption),
	}
}

func (s *MemoryStore) Balance(_ context.Context, readerID domain.UserID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[readerID], nil
}

func (s *MemoryStore) Credit(_ context.Context, readerID domain.UserID, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[readerID] += points
	return nil
}

func (s *MemoryStore) Redeem(_ context.Context, r Redemption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := redemptionKey{reader: r.ReaderID, document: r.DocumentID}
	if _, exists := s.redemptions[key]; exists {
		return sentinel.ErrDuplicate
	}
	if s.balances[r.ReaderID] < r.PointsSpent {
		return sentinel.ErrInsufficientBalance
	}
	s.balances[r.ReaderID] -= r.PointsSpent
	s.redemptions[key] = r
	return nil
}

func (s *MemoryStore) HasRedemption(_ context.Context, readerID domain.UserID, documentID domain.DocumentID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.redemptions[redemptionKey{reader: readerID, document: documentID}]
	return ok, nil
}

func (s *MemoryStore) ListRedemptions(_ context.Context, readerID domain.UserID) ([]Redemption, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Redemption
	for key, r := range s.redemptions {
		if key.reader == readerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// SetBalance seeds a balance for tests.
func (s *MemoryStore) SetBalance(readerID domain.UserID, points int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[readerID] = points
}
