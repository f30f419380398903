package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "search_queries_total",
			Help:      "Total number of search queries by outcome",
		},
		[]string{"operation", "status"},
	)

	SearchExpansionTerms = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "discovery",
			Name:      "search_expansion_terms",
			Help:      "Number of terms after query expansion",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "discovery",
			Name:      "search_candidates",
			Help:      "Number of fuzzy-match candidates before truncation",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "discovery",
			Name:      "search_duration_seconds",
			Help:      "Search pipeline duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	SimilarityRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "discovery",
			Name:      "similarity_requests_total",
			Help:      "Total number of embedding similarity requests",
		},
		[]string{"provider", "model", "status"},
	)

	SimilarityRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "discovery",
			Name:      "similarity_request_duration_seconds",
			Help:      "Embedding similarity request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)
)

// RegisterSearchMetrics registers search metrics with the default registry.
// Called explicitly from the composition root (no init()).
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		SearchQueriesTotal,
		SearchExpansionTerms,
		SearchCandidates,
		SearchDuration,
		SimilarityRequestsTotal,
		SimilarityRequestDuration,
	)
}
