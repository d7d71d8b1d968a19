package metrics

import (
	"mercator-hq/boolexpr/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// ParseMetrics tracks translation of trees into ASTs.
//
// Metrics:
//   - boolexpr_interpreter_parses_total: Translations by outcome
//   - boolexpr_interpreter_expression_size: Node count of translated ASTs
type ParseMetrics struct {
	parsesTotal    *prometheus.CounterVec
	expressionSize prometheus.Histogram
}

// NewParseMetrics creates and registers parse metrics with the provided registry.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of tree translations",
			},
			[]string{"outcome"},
		),

		expressionSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "expression_size",
				Help:      "Number of nodes in translated expressions",
				Buckets:   cfg.SizeBuckets,
			},
		),
	}

	registry.MustRegister(
		pm.parsesTotal,
		pm.expressionSize,
	)

	return pm
}

// RecordParse records a translation and, when it succeeded, the AST size.
func (pm *ParseMetrics) RecordParse(outcome string, size int) {
	pm.parsesTotal.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		pm.expressionSize.Observe(float64(size))
	}
}
