package config

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Default values for configuration fields.
const (
	// DefaultConfigPath is the file loaded when --config is not given.
	DefaultConfigPath = "boolexpr.yaml"

	// Parser defaults
	DefaultParserMaxDepth = 0

	// Reducer defaults
	DefaultReducerTrace = false

	// Watch defaults
	DefaultWatchDebounce = 100 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "console"
	DefaultMetricsEnabled       = false
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultPrometheusPath       = "/metrics"
	DefaultMetricsNamespace     = "boolexpr"
	DefaultMetricsSubsystem     = "interpreter"
)

// DefaultWatchExtensions lists the expression file extensions watched by default.
var DefaultWatchExtensions = []string{".sexp", ".bx"}

// DefaultDurationBuckets covers single reductions, which take microseconds.
var DefaultDurationBuckets = prometheus.ExponentialBuckets(0.000001, 2, 15) // 1µs to 16ms

// DefaultSizeBuckets covers expression node counts.
var DefaultSizeBuckets = prometheus.ExponentialBuckets(1, 2, 13) // 1 to 4096

// ApplyDefaults fills in zero-valued fields of cfg with their defaults.
// Fields that are already set are left unchanged.
func ApplyDefaults(cfg *Config) {
	// Negative depths mean unlimited, same as zero.
	if cfg.Parser.MaxDepth < 0 {
		cfg.Parser.MaxDepth = DefaultParserMaxDepth
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}

	// Logging defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}

	// Metrics defaults
	m := &cfg.Telemetry.Metrics
	if m.ListenAddress == "" {
		m.ListenAddress = DefaultMetricsListenAddress
	}
	if m.Path == "" {
		m.Path = DefaultPrometheusPath
	}
	if m.Namespace == "" {
		m.Namespace = DefaultMetricsNamespace
	}
	if m.Subsystem == "" {
		m.Subsystem = DefaultMetricsSubsystem
	}
	if len(m.DurationBuckets) == 0 {
		m.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if len(m.SizeBuckets) == 0 {
		m.SizeBuckets = append([]float64(nil), DefaultSizeBuckets...)
	}
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
