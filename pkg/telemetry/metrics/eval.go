package metrics

import (
	"time"

	"mercator-hq/boolexpr/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// EvalMetrics tracks reduction of ASTs.
//
// Metrics:
//   - boolexpr_interpreter_evaluations_total: Reductions by result
//   - boolexpr_interpreter_evaluation_duration_seconds: Reduction latency
//   - boolexpr_interpreter_rewrites_total: Rewrite rule firings by rule
type EvalMetrics struct {
	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	rewritesTotal      *prometheus.CounterVec
}

// NewEvalMetrics creates and registers evaluation metrics with the provided registry.
func NewEvalMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EvalMetrics {
	em := &EvalMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of expression reductions",
			},
			[]string{"result"},
		),

		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of expression reduction in seconds",
				Buckets:   cfg.DurationBuckets,
			},
		),

		rewritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rewrites_total",
				Help:      "Total number of rewrite rule firings",
			},
			[]string{"rule"},
		),
	}

	registry.MustRegister(
		em.evaluationsTotal,
		em.evaluationDuration,
		em.rewritesTotal,
	)

	return em
}

// RecordEvaluation records a reduction and its duration.
func (em *EvalMetrics) RecordEvaluation(result string, duration time.Duration) {
	em.evaluationsTotal.WithLabelValues(result).Inc()
	em.evaluationDuration.Observe(duration.Seconds())
}

// RecordRewrite records a rule firing.
func (em *EvalMetrics) RecordRewrite(rule string) {
	em.rewritesTotal.WithLabelValues(rule).Inc()
}
