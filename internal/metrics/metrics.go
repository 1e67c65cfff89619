// Package metrics defines the Prometheus metrics exported at /metrics for
// the analyze pipeline: request counts, duration, and impact set size.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "impact_analyser"

// Analysis holds the metrics recorded around a single orchestrator.Analyze
// call. Initialized once at startup via Init().
type Analysis struct {
	RequestsTotal   *prometheus.CounterVec
	DurationSeconds *prometheus.HistogramVec
	ImpactedCount   prometheus.Histogram
	RiskLevelTotal  *prometheus.CounterVec
}

// Default is the process-wide Analysis metrics instance, set by Init.
var Default *Analysis

// Init registers every metric against the default Prometheus registry.
// Calling it twice panics (duplicate registration), matching the
// singleton convention used elsewhere in the stack.
func Init() *Analysis {
	Default = &Analysis{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analyze",
				Name:      "requests_total",
				Help:      "Total number of analyze requests by status",
			},
			[]string{"status"},
		),
		DurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "analyze",
				Name:      "duration_seconds",
				Help:      "Analyze request duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"status"},
		),
		ImpactedCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "analyze",
				Name:      "impacted_components",
				Help:      "Size of the impacted component set per analyze request",
				Buckets:   []float64{1, 5, 10, 20, 50, 100, 250},
			},
		),
		RiskLevelTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "analyze",
				Name:      "risk_level_total",
				Help:      "Count of analyze requests by classified risk level",
			},
			[]string{"risk_level"},
		),
	}
	return Default
}
