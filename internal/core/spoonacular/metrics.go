package spoonacular

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealplanner_recipe_search_requests_total",
			Help: "Total number of recipe search calls by outcome",
		},
		[]string{"outcome"},
	)

	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mealplanner_recipe_search_duration_seconds",
			Help:    "Duration of recipe search calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func observeSearch(outcome string, d time.Duration) {
	searchRequests.WithLabelValues(outcome).Inc()
	searchDuration.Observe(d.Seconds())
}
