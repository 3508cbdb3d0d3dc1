package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docshelf/internal/platform/metrics"
	"docshelf/internal/platform/middleware"
)

// RouterDeps bundles everything the router needs so NewRouter stays a pure
// wiring function.
type RouterDeps struct {
	Documents   *DocumentHandler
	Reviews     *ReviewHandler
	Webhooks    *WebhookHandler
	Validator   middleware.TokenValidator
	Revocations middleware.RevocationChecker
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// NewRouter assembles the HTTP surface. Webhook and health endpoints sit
// outside the auth chain; everything under /api/v1 requires a bearer token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/webhooks/moderation", deps.Webhooks.ModerationCallback)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.RequireAuth(deps.Validator, deps.Revocations, deps.Logger))

		api.Route("/documents", func(docs chi.Router) {
			docs.Post("/", deps.Documents.Upload)
			docs.Route("/{documentID}", func(doc chi.Router) {
				doc.Get("/", deps.Documents.Get)
				doc.Post("/activate", deps.Documents.Activate)
				doc.Post("/deactivate", deps.Documents.Deactivate)
				doc.Delete("/", deps.Documents.Delete)
				doc.Post("/redemptions", deps.Documents.Redeem)
				doc.Post("/review-requests", deps.Reviews.Assign)
				doc.Get("/review-requests", deps.Reviews.ListForDocument)
			})
		})

		api.Route("/review-requests", func(reqs chi.Router) {
			reqs.Get("/", deps.Reviews.ListMine)
			reqs.Route("/{requestID}", func(req chi.Router) {
				req.Get("/", deps.Reviews.Get)
				req.Post("/response", deps.Reviews.Respond)
				req.Post("/review", deps.Reviews.Submit)
			})
		})

		api.Route("/me", func(me chi.Router) {
			me.Get("/balance", deps.Documents.Balance)
			me.Get("/redemptions", deps.Documents.Redemptions)
		})
	})

	return r
}
