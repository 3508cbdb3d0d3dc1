package identity

import (
	"context"
	"fmt"
	"sync"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
)

// InMemoryStore is the development and test directory.
type InMemoryStore struct {
	mu          sync.RWMutex
	users       map[domain.UserID]User
	memberships map[string]Membership
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:       make(map[domain.UserID]User),
		memberships: make(map[string]Membership),
	}
}

func membershipKey(userID domain.UserID, orgID domain.OrgID) string {
	return userID.String() + "/" + orgID.String()
}

// PutUser seeds or replaces a user record.
func (s *InMemoryStore) PutUser(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
}

// PutMembership seeds or replaces a membership record.
func (s *InMemoryStore) PutMembership(m Membership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships[membershipKey(m.UserID, m.OrgID)] = m
}

func (s *InMemoryStore) GetUser(_ context.Context, id domain.UserID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
	}
	return user, nil
}

func (s *InMemoryStore) GetMembership(_ context.Context, userID domain.UserID, orgID domain.OrgID) (Membership, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.memberships[membershipKey(userID, orgID)]
	return m, ok, nil
}
