package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	planDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mealplanner_plan_duration_seconds",
			Help:    "End-to-end duration of meal plan requests",
			Buckets: []float64{1, 2, 5, 10, 20, 40, 80, 160},
		},
	)

	stageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealplanner_stage_failures_total",
			Help: "Total number of meal plan failures by stage",
		},
		[]string{"stage"},
	)

	mealsPlanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mealplanner_meals_planned_total",
			Help: "Total number of meals with a successful recipe search",
		},
	)
)
