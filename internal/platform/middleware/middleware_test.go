package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docshelf/internal/platform/logger"
	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
	"docshelf/pkg/requestcontext"
)

type staticValidator struct {
	claims *Claims
	err    error
}

func (v staticValidator) ValidateToken(string) (*Claims, error) { return v.claims, v.err }

type staticRevocations struct {
	revoked bool
	err     error
}

func (r staticRevocations) IsRevoked(context.Context, string) (bool, error) {
	return r.revoked, r.err
}

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRequireAuth(t *testing.T) {
	log := logger.New()
	userID := domain.NewUserID()
	okValidator := staticValidator{claims: &Claims{UserID: userID, Role: domain.RoleReader, TokenID: "t1"}}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac := AuthzFrom(r.Context())
		assert.Equal(t, userID, ac.UserID)
		assert.Equal(t, domain.RoleReader, ac.Role)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		RequireAuth(okValidator, nil, log)(next).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer bad")
		RequireAuth(staticValidator{err: errors.New("expired")}, nil, log)(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer good")
		RequireAuth(okValidator, staticRevocations{revoked: true}, log)(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("revocation backend failure fails closed", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer good")
		RequireAuth(okValidator, staticRevocations{err: errors.New("down")}, log)(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token reaches handler with authz context", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer good")
		RequireAuth(okValidator, staticRevocations{}, log)(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestWithAuthzRoundTrip(t *testing.T) {
	ac := authz.Context{UserID: domain.NewUserID(), Role: domain.RoleBusinessAdmin}
	ctx := WithAuthz(context.Background(), ac)
	assert.Equal(t, ac, AuthzFrom(ctx))
	assert.Equal(t, authz.Context{}, AuthzFrom(context.Background()))
}
