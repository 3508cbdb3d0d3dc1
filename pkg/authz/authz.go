// Package authz carries the caller's identity and role into core operations.
//
// Every mutating service method takes a Context value explicitly instead of
// reading ambient state, so the policy check for each operation is visible
// at its call site. The values originate from the authentication middleware
// and are trusted as-is; no credential verification happens past that point.
package authz

import (
	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
)

// Context identifies the caller of a core operation.
type Context struct {
	UserID domain.UserID
	Role   domain.Role
}

// IsBusinessAdmin reports whether the caller holds the platform admin role.
func (c Context) IsBusinessAdmin() bool { return c.Role == domain.RoleBusinessAdmin }

// IsReviewer reports whether the caller holds the reviewer role.
func (c Context) IsReviewer() bool { return c.Role == domain.RoleReviewer }

// RequireRole returns a Forbidden error unless the caller holds the given role.
func (c Context) RequireRole(role domain.Role) error {
	if c.Role != role {
		return dErrors.New(dErrors.CodeForbidden, "operation requires role "+string(role))
	}
	return nil
}
