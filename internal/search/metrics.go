package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search metrics
var (
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_search_total",
		Help: "Job searches by sort key and outcome.",
	}, []string{"sort", "outcome"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jobboard_search_duration_seconds",
		Help:    "Duration of job searches including count and page fetch.",
		Buckets: prometheus.DefBuckets,
	})

	searchResultTotal = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "jobboard_search_matches",
		Help:    "Number of jobs matched by a search before pagination.",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
	})

	searchPredicates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_search_predicates_total",
		Help: "Predicates applied to searches, by kind.",
	}, []string{"kind"})
)
