// Package revocation tracks tokens invalidated before their natural expiry.
package revocation

import (
	"context"
	"time"
)

// TokenRevocationList records revoked token IDs until they would have
// expired anyway.
type TokenRevocationList interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
