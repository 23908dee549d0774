// Package metrics registers the Prometheus collectors used across the
// application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collegeconnect_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "collegeconnect_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// NotificationsFanOutTotal counts notifications written by the fan-out
	// pipeline, labelled by notification type.
	NotificationsFanOutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collegeconnect_notifications_fanout_total",
		Help: "Total number of notifications created by fan-out.",
	}, []string{"type"})

	// NotificationFanOutFailures counts fan-out batches that failed to persist.
	// Fan-out is best effort, so failures surface here and in logs rather than
	// in API responses.
	NotificationFanOutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "collegeconnect_notification_fanout_failures_total",
		Help: "Total number of failed notification fan-out batches.",
	}, []string{"type"})
)
