package domain

// Role is the platform-level role carried in the authorization context.
// The core trusts the role handed to it by the authentication collaborator
// and never re-verifies credentials.
type Role string

const (
	RoleReader        Role = "reader"
	RoleReviewer      Role = "reviewer"
	RoleOrgAdmin      Role = "organization_admin"
	RoleBusinessAdmin Role = "business_admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleReader, RoleReviewer, RoleOrgAdmin, RoleBusinessAdmin:
		return true
	}
	return false
}
