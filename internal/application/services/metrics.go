package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	orchestrationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gateway",
			Name:      "orchestration_runs_total",
			Help:      "Total orchestration runs by kind and terminal outcome.",
		},
		[]string{"kind", "outcome"},
	)

	orchestrationStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gateway",
			Name:      "orchestration_step_duration_seconds",
			Help:      "Duration of individual provider calls within a run.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind", "step"},
	)
)
