package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"docshelf/internal/moderation"
	dErrors "docshelf/pkg/domain-errors"
)

// WebhookHandler receives asynchronous callbacks from external
// collaborators. It lives outside the user auth chain; the moderation
// collaborator authenticates with a shared secret instead of a user token.
type WebhookHandler struct {
	intake ModerationIntake
	secret string
	logger *slog.Logger
}

func NewWebhookHandler(intake ModerationIntake, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{intake: intake, secret: secret, logger: logger}
}

// ModerationCallback handles POST /webhooks/moderation.
func (h *WebhookHandler) ModerationCallback(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		provided := r.Header.Get("X-Webhook-Secret")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
			h.logger.WarnContext(r.Context(), "moderation callback with bad secret")
			respondError(w, r, h.logger, dErrors.New(dErrors.CodeUnauthorized, "invalid webhook secret"))
			return
		}
	}

	var payload moderation.CallbackPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	if err := h.intake.HandleCallback(r.Context(), payload); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}
