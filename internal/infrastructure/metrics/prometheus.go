// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vidtube"

var (
	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - cache_type: redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// TogglesTotal tracks relationship toggles.
	// Labels:
	//   - relation: video_like, comment_like, tweet_like, subscription
	//   - state: on, off
	TogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggles_total",
			Help:      "Total number of relationship toggles by resulting state",
		},
		[]string{"relation", "state"},
	)

	// ToggleConflictsTotal counts inserts that lost a create race and were
	// retried as deletes.
	ToggleConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "toggle_conflicts_total",
			Help:      "Total number of toggle insert conflicts",
		},
		[]string{"relation"},
	)

	// OwnershipRejectionsTotal counts owned mutations that matched no row.
	// Missing and foreign resources are counted together.
	// Labels:
	//   - resource: video, comment, tweet, playlist
	OwnershipRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ownership_rejections_total",
			Help:      "Total number of owned mutations rejected as not found",
		},
		[]string{"resource"},
	)

	// ViewQueryDuration tracks aggregation view latency.
	// Labels:
	//   - view: channel_stats, video_feed, comments, ...
	ViewQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "view_query_duration_seconds",
			Help:      "Duration of aggregation view queries",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	// MediaCleanupTotal tracks removal of media left by deleted videos.
	// Labels:
	//   - stage: inline, worker
	//   - status: success, error, queued
	MediaCleanupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_cleanup_total",
			Help:      "Total number of media cleanup attempts",
		},
		[]string{"stage", "status"},
	)

	// RateLimitedTotal counts write requests rejected by the rate limiter.
	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
	)

	// HTTPRequestDuration tracks API latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
	CacheStatusStale   = "stale"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache type constants.
const (
	CacheTypeRedis = "redis"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)

// Media cleanup label constants.
const (
	CleanupStageInline = "inline"
	CleanupStageWorker = "worker"
	CleanupSuccess     = "success"
	CleanupError       = "error"
	CleanupQueued      = "queued"
)

// ObserveView starts a timer for the named view. Call the returned
// function when the query finishes.
func ObserveView(view string) func() {
	timer := prometheus.NewTimer(ViewQueryDuration.WithLabelValues(view))
	return func() { timer.ObserveDuration() }
}
