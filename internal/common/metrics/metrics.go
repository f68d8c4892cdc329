package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PlacementFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placement_fetches_total",
			Help: "Total number of placement fetch calls by outcome",
		},
		[]string{"outcome"},
	)

	RTPSFlows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rtps_flows_total",
			Help: "Total number of RTPS flows by terminal state",
		},
		[]string{"outcome"},
	)

	PrescreenResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prescreen_results_total",
			Help: "Total number of prescreen lookup results by mapped result",
		},
		[]string{"result"},
	)

	ExtractionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "extraction_failures_total",
			Help: "Total number of placement fragments that failed extraction",
		},
	)

	ChallengeRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "challenge_retries_total",
			Help: "Total number of bot-challenge retry attempts",
		},
	)

	FlowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "flow_duration_seconds",
			Help: "Duration of a complete flow in seconds",
		},
		[]string{"flow"},
	)
)
