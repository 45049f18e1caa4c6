// Package metrics holds the bot's prometheus collectors. They are registered
// on the default registry and exposed by the HTTP server at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reply outcomes.
const (
	OutcomeSent             = "sent"
	OutcomeNoGenre          = "no_genre"
	OutcomeNoRecommendation = "no_recommendation"
	OutcomeInvalid          = "invalid"
	OutcomeFailed           = "failed"
)

var (
	MentionsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviebot_mentions_received_total",
			Help: "Total number of mentions received from the stream",
		},
	)

	Replies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebot_replies_total",
			Help: "Total number of handled mentions by outcome",
		},
		[]string{"outcome"},
	)

	StreamConnections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviebot_stream_connections_total",
			Help: "Total number of stream connections opened",
		},
	)

	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviebot_catalog_request_duration_seconds",
			Help:    "Duration of movie catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	CatalogRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebot_catalog_request_errors_total",
			Help: "Total number of failed movie catalog requests",
		},
		[]string{"endpoint"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviebot_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviebot_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)
