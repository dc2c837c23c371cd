package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts requests by method, route template and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dogtrainer_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dogtrainer_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// WebhookEvents counts ingest outcomes: ok, ignored, rejected, failed.
	WebhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dogtrainer_webhook_events_total",
		Help: "Webhook events by source and result",
	}, []string{"source", "result"})

	SessionReconcile = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dogtrainer_session_reconcile_total",
		Help: "Reconciled sessions by mode and outcome",
	}, []string{"mode", "outcome"})

	AuditDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dogtrainer_audit_dropped_total",
		Help: "History events dropped because the queue was full",
	})
)
