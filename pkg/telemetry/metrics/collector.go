package metrics

import (
	"time"

	"mercator-hq/boolexpr/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Label values for parse outcomes and evaluation results.
const (
	OutcomeOK = "ok"

	ResultTrue  = "true"
	ResultFalse = "false"
	ResultError = "error"
)

// Collector is the single entry point for boolexpr's Prometheus metrics.
// It owns a registry so that several collectors, e.g. one per test, never
// collide on metric names.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics *ParseMetrics
	evalMetrics  *EvalMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "boolexpr",
//		Subsystem: "interpreter",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = config.DefaultDurationBuckets
	}
	if len(cfg.SizeBuckets) == 0 {
		cfg.SizeBuckets = config.DefaultSizeBuckets
	}

	return &Collector{
		config:       cfg,
		registry:     registry,
		parseMetrics: NewParseMetrics(cfg, registry),
		evalMetrics:  NewEvalMetrics(cfg, registry),
	}
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// RecordParse records one translation.
//
// Parameters:
//   - outcome: OutcomeOK, or the error type ("syntax", "read")
//   - size: node count of the resulting AST, ignored on failure
func (c *Collector) RecordParse(outcome string, size int) {
	if !c.config.Enabled {
		return
	}

	c.parseMetrics.RecordParse(outcome, size)
}

// RecordEvaluation records one reduction.
//
// Parameters:
//   - result: ResultTrue, ResultFalse or ResultError
//   - duration: time spent in the reducer
//
// Example:
//
//	collector.RecordEvaluation(metrics.ResultTrue, 3*time.Microsecond)
func (c *Collector) RecordEvaluation(result string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.evalMetrics.RecordEvaluation(result, duration)
}

// RecordRewrite records one firing of a rewrite rule.
func (c *Collector) RecordRewrite(rule string) {
	if !c.config.Enabled {
		return
	}

	c.evalMetrics.RecordRewrite(rule)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
