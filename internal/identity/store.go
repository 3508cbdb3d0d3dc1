package identity

import (
	"context"

	"docshelf/pkg/domain"
)

// Store reads directory facts. Implementations return
// sentinel.ErrNotFound for absent users; absent memberships are reported
// as (Membership{}, false, nil) because "not a member" is an ordinary
// answer, not an error.
type Store interface {
	GetUser(ctx context.Context, id domain.UserID) (User, error)
	GetMembership(ctx context.Context, userID domain.UserID, orgID domain.OrgID) (Membership, bool, error)
}
