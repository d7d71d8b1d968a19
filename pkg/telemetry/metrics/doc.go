// Package metrics provides Prometheus metrics for the boolexpr interpreter.
//
// # Metrics
//
//   - parses_total{outcome}: translations, outcome "ok", "syntax" or "read"
//   - expression_size: node count of translated expressions
//   - evaluations_total{result}: reductions, result "true", "false" or "error"
//   - evaluation_duration_seconds: reduction latency
//   - rewrites_total{rule}: rewrite rule firings
//
// All names carry the configured namespace and subsystem, by default
// boolexpr_interpreter_.
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	interp := boolexpr.NewInterpreter(boolexpr.WithRecorder(collector))
//
//	http.Handle("/metrics", collector.Handler())
//
// Label values come from closed sets (outcomes, results, rule names), so
// the collector needs no cardinality limits.
package metrics
