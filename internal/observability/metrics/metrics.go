package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipe_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swipe_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipe_login_attempts_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	moderationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipe_moderation_decisions_total",
		Help: "Announcement moderation changes by resulting status",
	}, []string{"moder_status"})

	mediaUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipe_media_uploads_total",
		Help: "Image uploads by collection and result",
	}, []string{"collection", "result"})
)

func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

func ObserveModeration(moderStatus string) {
	moderationDecisions.WithLabelValues(moderStatus).Inc()
}

func ObserveMediaUpload(collection, result string) {
	mediaUploads.WithLabelValues(collection, result).Inc()
}
