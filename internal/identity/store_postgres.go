package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"docshelf/pkg/domain"
	"docshelf/pkg/platform/sentinel"
)

// PostgresStore reads the directory tables maintained by the account
// management service.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetUser(ctx context.Context, id domain.UserID) (User, error) {
	var role string
	err := s.db.QueryRowContext(ctx,
		`SELECT role FROM users WHERE id = $1`,
		uuid.UUID(id),
	).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return User{ID: id, Role: domain.Role(role)}, nil
}

func (s *PostgresStore) GetMembership(ctx context.Context, userID domain.UserID, orgID domain.OrgID) (Membership, bool, error) {
	var (
		status string
		admin  bool
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT status, is_admin FROM org_memberships WHERE user_id = $1 AND org_id = $2`,
		uuid.UUID(userID), uuid.UUID(orgID),
	).Scan(&status, &admin)
	if errors.Is(err, sql.ErrNoRows) {
		return Membership{}, false, nil
	}
	if err != nil {
		return Membership{}, false, fmt.Errorf("get membership: %w", err)
	}
	return Membership{
		UserID: userID,
		OrgID:  orgID,
		Status: MembershipStatus(status),
		Admin:  admin,
	}, true, nil
}
