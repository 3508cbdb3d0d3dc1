package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ModerationResults *prometheus.CounterVec
	ReviewsSubmitted  *prometheus.CounterVec
	Redemptions       prometheus.Counter
	RedemptionsFailed *prometheus.CounterVec
	RequestsExpired   prometheus.Counter
	RequestLatency    *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ModerationResults: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docshelf_moderation_results_total",
			Help: "Moderation callbacks applied, by outcome",
		}, []string{"outcome"}),
		ReviewsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docshelf_reviews_submitted_total",
			Help: "Document reviews submitted, by decision",
		}, []string{"decision"}),
		Redemptions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "docshelf_redemptions_total",
			Help: "Successful premium document redemptions",
		}),
		RedemptionsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docshelf_redemptions_failed_total",
			Help: "Rejected redemption attempts, by reason",
		}, []string{"reason"}),
		RequestsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "docshelf_review_requests_expired_total",
			Help: "Review requests expired by sweep or lazy read",
		}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docshelf_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m == nil || m.RequestLatency == nil {
		return
	}
	m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
}
