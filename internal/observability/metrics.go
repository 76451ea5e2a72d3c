// Package observability provides Prometheus collectors and OpenTelemetry
// tracing for the engine.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonate_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "resonate_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FollowToggles counts follow toggles by resulting status (added/removed).
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonate_follow_toggles_total",
		Help: "Total number of follow toggles by resulting status",
	}, []string{"status"})

	// RecommendationRequests counts recommendation computations by mode
	// (personalized vs global fallback).
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonate_recommendation_requests_total",
		Help: "Total number of recommendation computations by selection mode",
	}, []string{"mode"})

	// PlaylistGenerations counts generated-playlist runs by mix outcome
	// (updated/skipped).
	PlaylistGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "resonate_playlist_generations_total",
		Help: "Total number of playlist generation runs by mix outcome",
	}, []string{"mix"})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
