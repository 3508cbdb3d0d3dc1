package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"docshelf/internal/moderation"
	"docshelf/internal/transport/http/mocks"
	dErrors "docshelf/pkg/domain-errors"
)

const testWebhookSecret = "hook-secret"

type WebhookHandlerSuite struct {
	suite.Suite
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerSuite))
}

func (s *WebhookHandlerSuite) newRouter(t *testing.T, secret string) (*mocks.MockModerationIntake, chi.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	intake := mocks.NewMockModerationIntake(ctrl)
	handler := NewWebhookHandler(intake, secret, slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	router.Post("/webhooks/moderation", handler.ModerationCallback)
	return intake, router
}

func (s *WebhookHandlerSuite) post(router chi.Router, secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhooks/moderation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Webhook-Secret", secret)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func (s *WebhookHandlerSuite) TestModerationCallback() {
	passBody := `{"jobId":"job-1","status":"completed","result":{"verdict":"pass"}}`

	s.T().Run("valid callback - 202", func(t *testing.T) {
		intake, router := s.newRouter(t, testWebhookSecret)
		intake.EXPECT().HandleCallback(gomock.Any(), moderation.CallbackPayload{
			JobID:  "job-1",
			Status: "completed",
			Result: &moderation.CallbackResult{Verdict: "pass"},
		}).Return(nil)

		rec := s.post(router, testWebhookSecret, passBody)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"status":"accepted"}`, rec.Body.String())
	})

	s.T().Run("wrong secret - 401, intake untouched", func(t *testing.T) {
		intake, router := s.newRouter(t, testWebhookSecret)
		intake.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Times(0)

		rec := s.post(router, "not-the-secret", passBody)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	s.T().Run("missing secret - 401", func(t *testing.T) {
		intake, router := s.newRouter(t, testWebhookSecret)
		intake.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Times(0)

		rec := s.post(router, "", passBody)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	s.T().Run("empty configured secret skips the check", func(t *testing.T) {
		intake, router := s.newRouter(t, "")
		intake.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Return(nil)

		rec := s.post(router, "", passBody)

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	s.T().Run("malformed JSON - 400", func(t *testing.T) {
		intake, router := s.newRouter(t, testWebhookSecret)
		intake.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).Times(0)

		rec := s.post(router, testWebhookSecret, `{broken`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	s.T().Run("unknown job - 404", func(t *testing.T) {
		intake, router := s.newRouter(t, testWebhookSecret)
		intake.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeNotFound, "moderation job not found"))

		rec := s.post(router, testWebhookSecret, passBody)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	s.T().Run("conflicting terminal payload - 409", func(t *testing.T) {
		intake, router := s.newRouter(t, testWebhookSecret)
		intake.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeConflict, "callback contradicts recorded outcome"))

		rec := s.post(router, testWebhookSecret, passBody)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	s.T().Run("invalid payload shape - 400", func(t *testing.T) {
		intake, router := s.newRouter(t, testWebhookSecret)
		intake.EXPECT().HandleCallback(gomock.Any(), gomock.Any()).
			Return(dErrors.New(dErrors.CodeInvalidInput, "completed callback requires a result"))

		rec := s.post(router, testWebhookSecret, `{"jobId":"job-1","status":"completed"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
