package extractor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fieldQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealplanner_extraction_queries_total",
			Help: "Total number of per-field extraction queries",
		},
		[]string{"field", "outcome"},
	)

	fieldDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealplanner_extraction_query_duration_seconds",
			Help:    "Duration of per-field extraction queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"field"},
	)
)

func observeField(field string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	fieldQueries.WithLabelValues(field, outcome).Inc()
	fieldDuration.WithLabelValues(field).Observe(d.Seconds())
}
