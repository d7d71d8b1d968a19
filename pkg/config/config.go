package config

import "time"

// Config is the root configuration for boolexpr.
// All fields map to the YAML configuration file structure.
type Config struct {
	// Parser controls translation of s-expression trees into ASTs.
	Parser ParserConfig `yaml:"parser"`

	// Reducer controls evaluation of ASTs.
	Reducer ReducerConfig `yaml:"reducer"`

	// Watch controls the file watcher used by "boolexpr watch".
	Watch WatchConfig `yaml:"watch"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains translator configuration.
type ParserConfig struct {
	// MaxDepth rejects trees nested deeper than this as invalid syntax.
	// Zero means unlimited.
	// Default: 0
	MaxDepth int `yaml:"max_depth"`
}

// ReducerConfig contains reducer configuration.
type ReducerConfig struct {
	// Trace records every rewrite that fires and includes the steps in results.
	// Default: false
	Trace bool `yaml:"trace"`
}

// WatchConfig contains file watcher configuration.
type WatchConfig struct {
	// Debounce is how long the watcher waits for writes to settle before
	// re-evaluating a file.
	// Default: 100ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions lists the file extensions that trigger re-evaluation.
	// Default: [".sexp", ".bx"]
	Extensions []string `yaml:"extensions"`
}

// TelemetryConfig groups observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "console"
	Format string `yaml:"format"`

	// AddSource includes the file and line of the log call.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// ListenAddress is where "boolexpr watch" serves the metrics endpoint.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "boolexpr"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "interpreter"
	Subsystem string `yaml:"subsystem"`

	// DurationBuckets are histogram buckets for evaluation latency in seconds.
	// Default: 1µs to 16ms, exponential
	DurationBuckets []float64 `yaml:"duration_buckets"`

	// SizeBuckets are histogram buckets for expression node counts.
	// Default: 1 to 4096, exponential
	SizeBuckets []float64 `yaml:"size_buckets"`
}
