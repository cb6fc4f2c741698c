// Package metrics provides the Prometheus collectors for the site.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	NewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_created_total",
			Help: "Number of news articles published",
		},
	)

	ReviewsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_created_total",
			Help: "Number of customer reviews stored",
		},
	)

	// reason is one of: validation, csrf, conflict, throttled
	FormRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_rejections_total",
			Help: "Form submissions rejected before or at the store",
		},
		[]string{"form", "reason"},
	)
)

func RecordRequest(method, path string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func RecordNewsCreated() {
	NewsCreatedTotal.Inc()
}

func RecordReviewCreated() {
	ReviewsCreatedTotal.Inc()
}

func RecordFormRejection(form, reason string) {
	FormRejectionsTotal.WithLabelValues(form, reason).Inc()
}
