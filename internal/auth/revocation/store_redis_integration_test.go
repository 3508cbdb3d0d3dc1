//go:build integration

package revocation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"docshelf/internal/auth/revocation"
	"docshelf/pkg/testutil/containers"
)

type RedisTRLSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	trl   *revocation.RedisTRL
}

func TestRedisTRLSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisTRLSuite))
}

func (s *RedisTRLSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.trl = revocation.NewRedisTRL(s.redis.Client)
}

func (s *RedisTRLSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisTRLSuite) TestRevokeAndCheck() {
	ctx := context.Background()

	revoked, err := s.trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.trl.RevokeToken(ctx, "jti-1", time.Minute))

	revoked, err = s.trl.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)
}

func (s *RedisTRLSuite) TestRevocationExpiresWithToken() {
	ctx := context.Background()
	s.Require().NoError(s.trl.RevokeToken(ctx, "jti-short", 100*time.Millisecond))

	revoked, err := s.trl.IsRevoked(ctx, "jti-short")
	s.Require().NoError(err)
	s.True(revoked)

	s.Eventually(func() bool {
		revoked, err := s.trl.IsRevoked(ctx, "jti-short")
		return err == nil && !revoked
	}, 2*time.Second, 50*time.Millisecond, "entry should lapse with the token's TTL")
}

func (s *RedisTRLSuite) TestEmptyTokenIDIsNoop() {
	ctx := context.Background()
	s.Require().NoError(s.trl.RevokeToken(ctx, "", time.Minute))

	revoked, err := s.trl.IsRevoked(ctx, "")
	s.Require().NoError(err)
	s.False(revoked)
}
