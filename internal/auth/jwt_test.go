package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshelf/pkg/domain"
	dErrors "docshelf/pkg/domain-errors"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-signing-key", "docshelf")
	userID := domain.NewUserID()

	token, err := svc.GenerateAccessToken(userID, domain.RoleReviewer, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleReviewer, claims.Role)
	assert.NotEmpty(t, claims.TokenID)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-signing-key", "docshelf")
	token, err := svc.GenerateAccessToken(domain.NewUserID(), domain.RoleReader, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestJWTService_RejectsWrongKey(t *testing.T) {
	token, err := NewJWTService("key-a", "docshelf").
		GenerateAccessToken(domain.NewUserID(), domain.RoleReader, time.Hour)
	require.NoError(t, err)

	_, err = NewJWTService("key-b", "docshelf").ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestJWTService_RejectsUnknownRole(t *testing.T) {
	svc := NewJWTService("test-signing-key", "docshelf")
	token, err := svc.GenerateAccessToken(domain.NewUserID(), domain.Role("superuser"), time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}
