package middleware

import (
	"net/http"
	"time"

	"docshelf/pkg/requestcontext"
)

// RequestTime pins one wall-clock reading per request. Every deadline
// comparison downstream (lazy expiry, redemption timestamps) reads this
// value, so a single request can never observe two different "now"s.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
