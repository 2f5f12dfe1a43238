package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	AssistantCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_call_latency_ms",
			Help:    "Generative model call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"operation", "status"},
	)

	MilestoneUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timeline_milestone_updates_total",
			Help: "Total number of milestone completion updates",
		},
		[]string{"completed"},
	)

	DocumentUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_uploads_total",
			Help: "Total number of checklist document uploads",
		},
		[]string{"status"}, // status: success, rejected, failed
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_rate_limited_total",
			Help: "Total number of auth requests rejected by the rate limiter",
		},
	)
)

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func RecordAssistantCall(operation, status string, duration time.Duration) {
	AssistantCallLatency.WithLabelValues(operation, status).Observe(float64(duration.Milliseconds()))
}

func IncrementMilestoneUpdate(completed bool) {
	label := "false"
	if completed {
		label = "true"
	}
	MilestoneUpdates.WithLabelValues(label).Inc()
}

func IncrementDocumentUpload(status string) {
	DocumentUploads.WithLabelValues(status).Inc()
}

func IncrementRateLimited() {
	RateLimited.Inc()
}
