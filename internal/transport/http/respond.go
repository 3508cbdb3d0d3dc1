// Package http wires the platform's operations to their REST surface.
// Handlers parse and validate the boundary, delegate to services, and map
// coded domain errors onto HTTP statuses; no business rules live here.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "docshelf/pkg/domain-errors"
	"docshelf/pkg/requestcontext"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps a coded domain error to its HTTP status. Causes stay in
// the logs; callers only ever see the code and its safe message.
func respondError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := dErrors.CodeInternal
	message := "internal error"
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		code = domainErr.Code
		message = domainErr.Message
	}

	status := dErrors.ToHTTPStatus(code)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"error", err,
			"path", r.URL.Path,
			"request_id", requestcontext.RequestID(r.Context()),
		)
	}
	respondJSON(w, status, errorResponse{Error: string(code), Message: message})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed JSON body")
	}
	return nil
}
