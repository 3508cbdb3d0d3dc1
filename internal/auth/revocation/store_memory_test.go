package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTRL(t *testing.T) {
	ctx := context.Background()
	trl := NewMemoryTRL()

	t.Run("unknown token is not revoked", func(t *testing.T) {
		revoked, err := trl.IsRevoked(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("revoked token is reported until ttl", func(t *testing.T) {
		require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Hour))
		revoked, err := trl.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired entry falls out", func(t *testing.T) {
		require.NoError(t, trl.RevokeToken(ctx, "jti-2", -time.Second))
		revoked, err := trl.IsRevoked(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("empty jti is a no-op", func(t *testing.T) {
		require.NoError(t, trl.RevokeToken(ctx, "", time.Hour))
		revoked, err := trl.IsRevoked(ctx, "")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
