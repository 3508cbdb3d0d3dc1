package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for revoked tokens.
const revokedTokenKeyPrefix = "trl:jti:"

// RedisTRL is a Redis-backed TokenRevocationList, the production
// implementation for deployments where multiple instances share state.
type RedisTRL struct {
	client *redis.Client
}

// NewRedisTRL constructs a Redis-backed token revocation list.
func NewRedisTRL(client *redis.Client) *RedisTRL {
	return &RedisTRL{client: client}
}

// RevokeToken adds a token to the revocation list with TTL.
// Uses SET with expiry; key existence is what matters.
func (t *RedisTRL) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	return t.client.Set(ctx, revokedTokenKeyPrefix+jti, "1", ttl).Err()
}

// IsRevoked checks if a token is in the revocation list.
// Returns false if the key doesn't exist (not revoked, or already expired).
func (t *RedisTRL) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, err := t.client.Get(ctx, revokedTokenKeyPrefix+jti).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
