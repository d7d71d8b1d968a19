// Package telemetry groups the observability packages of boolexpr.
//
//   - logging: slog loggers with run, case and source fields from the context
//   - metrics: Prometheus counters and histograms for parses and reductions
//
// Both are optional. The parser and reducer log only at debug level and
// work without a metrics collector.
package telemetry
