package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Trending scheduler metrics
	TrendingCycleDuration prometheus.Histogram
	TrendingItemsScored   *prometheus.CounterVec
	TrendingItemErrors    *prometheus.CounterVec
	TrendingOrphansPruned prometheus.Counter

	// Feed metrics
	FeedRequests        *prometheus.CounterVec
	FeedComposeDuration prometheus.Histogram
}

var globalMetrics *Metrics

// InitMetrics initializes the Prometheus metrics
func InitMetrics() *Metrics {
	metrics := &Metrics{
		TrendingCycleDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "communityhub_trending_cycle_duration_seconds",
			Help:    "Duration of a full trending recomputation cycle",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300},
		}),

		TrendingItemsScored: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "communityhub_trending_items_scored_total",
			Help: "Content items scored per cycle by type",
		}, []string{"content_type"}),

		TrendingItemErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "communityhub_trending_item_errors_total",
			Help: "Per-item scoring failures skipped by the scheduler",
		}, []string{"content_type"}),

		TrendingOrphansPruned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "communityhub_trending_orphans_pruned_total",
			Help: "Trending records deleted because their content item no longer exists",
		}),

		FeedRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "communityhub_feed_requests_total",
			Help: "Feed requests by variant",
		}, []string{"variant"}), // "authenticated", "public", "trending"

		FeedComposeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "communityhub_feed_compose_duration_seconds",
			Help:    "Feed composition latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
	}

	globalMetrics = metrics
	return metrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}
