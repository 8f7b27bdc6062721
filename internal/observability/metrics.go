// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// FeedQueryLatency records activity feed query latency by sort mode.
	FeedQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "waypoint_feed_query_latency_seconds",
		Help:    "Activity feed query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"sort"})

	// FeedPageSize records how many activities each feed page returned.
	FeedPageSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "waypoint_feed_page_size",
		Help:    "Number of activities returned per feed page",
		Buckets: []float64{0, 1, 5, 10, 20, 50},
	})

	// ActivityAppends counts appended activities by type.
	ActivityAppends = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_activity_appends_total",
		Help: "Total number of activities appended by type",
	}, []string{"type"})

	// LikeMutations counts like/unlike requests by operation and outcome.
	// Outcome is "applied" when a row changed and "noop" for the idempotent
	// duplicate or absent cases.
	LikeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_like_mutations_total",
		Help: "Total number of like mutations by operation and outcome",
	}, []string{"operation", "outcome"})

	// CommentMutations counts comment writes by operation.
	CommentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_comment_mutations_total",
		Help: "Total number of comment mutations by operation",
	}, []string{"operation"})

	// NotificationPublishes counts notification publish attempts by event and result.
	NotificationPublishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "waypoint_notification_publishes_total",
		Help: "Total number of notification publish attempts by event type and result",
	}, []string{"event", "result"})
)

// ObserveFeedQuery records the latency of a feed query for the given sort mode.
func ObserveFeedQuery(sort string, start time.Time) {
	FeedQueryLatency.WithLabelValues(sort).Observe(time.Since(start).Seconds())
}
