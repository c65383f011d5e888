// File: internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geminichat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geminichat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	// Business metrics
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geminichat_logins_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"}, // "created", "login", "failed"
	)

	ChatsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geminichat_chats_created_total",
			Help: "Total chats created",
		},
	)

	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geminichat_messages_sent_total",
			Help: "Total user messages accepted",
		},
	)

	UpstreamFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geminichat_upstream_failures_total",
			Help: "Total failed calls to the AI backend",
		},
	)
)
