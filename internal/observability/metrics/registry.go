// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency. Counting requests are CPU bound
	// and short, so the buckets start at 1ms.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsInFlight tracks the current number of HTTP requests being processed
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPRateLimitedTotal counts requests rejected by the per-client rate limiter
	HTTPRateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of HTTP requests rejected by rate limiting",
		},
	)
)

// Business metrics track counting operations
var (
	// CountRequestsTotal counts counting operations by operation and outcome.
	// operation: count, count_in_range, count_in_range_with_limit
	// outcome: success, null_argument, index_out_of_range, invalid_argument, rejected
	CountRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "charcount_requests_total",
			Help: "Total number of character counting operations",
		},
		[]string{"operation", "outcome"},
	)

	// CountMatches observes the number of matches reported per successful operation
	CountMatches = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "charcount_matches",
			Help:    "Number of matches reported per counting operation",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"operation"},
	)

	// CountTextRunes observes the input text length in runes
	CountTextRunes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "charcount_text_runes",
			Help:    "Input text length in runes per counting operation",
			Buckets: prometheus.ExponentialBuckets(16, 4, 9),
		},
	)

	// LimitCappedTotal counts operations whose result was truncated by the limit
	LimitCappedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "charcount_limit_capped_total",
			Help: "Total number of counting operations truncated by their limit",
		},
	)

	// BatchSize observes the number of items per batch request
	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "charcount_batch_size",
			Help:    "Number of items per batch counting request",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		},
	)
)
