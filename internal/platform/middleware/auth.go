package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"docshelf/pkg/authz"
	"docshelf/pkg/domain"
	"docshelf/pkg/requestcontext"
)

// Claims is what the middleware needs back from the token validator.
type Claims struct {
	UserID  domain.UserID
	Role    domain.Role
	TokenID string
}

// TokenValidator validates a bearer token and extracts its claims.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// RevocationChecker reports whether a token has been revoked since issue.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type authzKey struct{}

// AuthzFrom retrieves the caller's authorization context. The zero value
// means the request was not authenticated.
func AuthzFrom(ctx context.Context) authz.Context {
	if ac, ok := ctx.Value(authzKey{}).(authz.Context); ok {
		return ac
	}
	return authz.Context{}
}

// WithAuthz injects an authorization context. Exported for handler tests
// that skip the middleware chain.
func WithAuthz(ctx context.Context, ac authz.Context) context.Context {
	return context.WithValue(ctx, authzKey{}, ac)
}

// RequireAuth validates the bearer token, checks revocation, and stores the
// caller's authorization context for handlers. The core trusts these claims;
// no further credential checks happen downstream.
func RequireAuth(validator TokenValidator, revocations RevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token", "request_id", requestID)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			if revocations != nil {
				revoked, err := revocations.IsRevoked(ctx, claims.TokenID)
				if err != nil {
					// Revocation backend down: fail closed.
					logger.ErrorContext(ctx, "revocation check failed",
						"error", err,
						"request_id", requestID,
					)
					writeUnauthorized(w, "Unable to verify token")
					return
				}
				if revoked {
					logger.WarnContext(ctx, "unauthorized access - revoked token",
						"request_id", requestID,
					)
					writeUnauthorized(w, "Token has been revoked")
					return
				}
			}

			ctx = WithAuthz(ctx, authz.Context{UserID: claims.UserID, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
