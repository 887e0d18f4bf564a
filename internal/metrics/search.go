package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and classifier Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contactrank",
			Name:      "searches_total",
			Help:      "Total number of search requests by outcome",
		},
		[]string{"outcome"}, // "ranked" / "fallback" / "empty" / "error"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contactrank",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"outcome"},
	)

	CandidatesConsidered = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "contactrank",
			Name:      "search_candidates_considered",
			Help:      "Number of candidate contacts scored per search",
			Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000},
		},
	)

	ClassifierRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contactrank",
			Name:      "classifier_requests_total",
			Help:      "Total number of external classifier requests",
		},
		[]string{"classifier", "status"}, // classifier: "intent" / "pattern"
	)

	ClassifierRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "contactrank",
			Name:      "classifier_request_duration_seconds",
			Help:      "External classifier request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"classifier"},
	)

	ClassifierFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contactrank",
			Name:      "classifier_fallbacks_total",
			Help:      "Degraded-mode events where the local heuristic replaced a classifier",
		},
		[]string{"classifier"},
	)

	ResponseCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "contactrank",
			Name:      "response_cache_total",
			Help:      "Search response cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(CandidatesConsidered)
	prometheus.MustRegister(ClassifierRequestsTotal)
	prometheus.MustRegister(ClassifierRequestDuration)
	prometheus.MustRegister(ClassifierFallbacksTotal)
	prometheus.MustRegister(ResponseCacheTotal)
	searchMetricsRegistered = true
}
