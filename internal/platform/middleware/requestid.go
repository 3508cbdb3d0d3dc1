package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"docshelf/pkg/requestcontext"
)

const requestIDHeader = "X-Request-ID"

// RequestID attaches a request ID to the context and response, reusing the
// caller's header when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)
		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
