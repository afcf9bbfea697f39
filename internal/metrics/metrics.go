// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	ReviewMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "review_mutations_total",
		Help: "Total number of review creates, updates and deletes",
	}, []string{"op"})

	RatingRecomputationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rating_recomputations_total",
		Help: "Total number of vendor rating recomputations",
	}, []string{"result"})

	LoginFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "login_failures_total",
		Help: "Total number of rejected login attempts",
	})

	WaitlistSignupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waitlist_signups_total",
		Help: "Total number of new waitlist entries",
	}, []string{"role"})

	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders placed",
	})

	OrdersCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Total number of cancelled orders",
	})

	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uploads_total",
		Help: "Total number of stored uploads",
	}, []string{"kind"})
)
