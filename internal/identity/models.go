// Package identity is the minimal user directory the trust core consults:
// who a user is, what role they hold, and which organizations they belong
// to. Account management itself lives outside this core.
package identity

import "docshelf/pkg/domain"

// User is the directory view of a platform account.
type User struct {
	ID   domain.UserID
	Role domain.Role
}

// MembershipStatus tracks an organization enrollment.
type MembershipStatus string

const (
	MembershipJoined  MembershipStatus = "joined"
	MembershipPending MembershipStatus = "pending"
	MembershipLeft    MembershipStatus = "left"
)

// Membership links a user to an organization. Admin marks the
// organization's administrator account.
type Membership struct {
	UserID domain.UserID
	OrgID  domain.OrgID
	Status MembershipStatus
	Admin  bool
}

// Joined reports whether the membership currently grants internal access.
func (m Membership) Joined() bool { return m.Status == MembershipJoined }
