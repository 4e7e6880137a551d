package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParseTierTotal tracks which extraction tier recovered each batch
	// response (strict, embedded, regex, failed).
	ParseTierTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_parse_tier_total",
			Help: "Batch responses recovered per extraction tier",
		},
		[]string{"tier"},
	)

	// BatchesProcessed tracks classified batches by outcome
	BatchesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_batches_processed_total",
			Help: "Classification batches processed by outcome (ok/oracle_error)",
		},
		[]string{"outcome"},
	)

	// PostsFetched tracks posts retrieved from the social network
	PostsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mastodon_posts_fetched_total",
			Help: "Total posts fetched from the Mastodon API",
		},
	)

	// AnalyzeRequests tracks /analyze requests by status class
	AnalyzeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyze_requests_total",
			Help: "Analyze requests by result (ok/invalid/fetch_error/empty)",
		},
		[]string{"result"},
	)

	// AnalyzeDuration tracks end-to-end analyze latency in seconds
	AnalyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analyze_request_duration_seconds",
			Help:    "End-to-end analyze request duration in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)
)
