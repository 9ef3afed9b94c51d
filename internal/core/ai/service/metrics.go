package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealplanner_llm_requests_total",
			Help: "Total number of text-generation backend calls",
		},
		[]string{"backend", "outcome"},
	)

	llmDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealplanner_llm_request_duration_seconds",
			Help:    "Duration of text-generation backend calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"backend"},
	)

	llmTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealplanner_llm_tokens_total",
			Help: "Total tokens reported by text-generation backends",
		},
		[]string{"backend"},
	)
)
