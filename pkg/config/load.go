package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "BOOLEXPR_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	return LoadConfigBytes(data, path)
}

// LoadConfigBytes parses configuration from YAML data. source names the
// data in error messages.
func LoadConfigBytes(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", source, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention BOOLEXPR_SECTION_FIELD (e.g., BOOLEXPR_PARSER_MAX_DEPTH).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return withEnvOverrides(cfg)
}

// LoadOrDefault is like LoadConfigWithEnvOverrides, but when the file does
// not exist and required is false it starts from the defaults instead of
// failing. The CLI passes required=true when --config was given explicitly.
func LoadOrDefault(path string, required bool) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}
	return withEnvOverrides(cfg)
}

func withEnvOverrides(cfg *Config) (*Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format BOOLEXPR_SECTION_FIELD. A value that
// cannot be parsed for its field is reported as a validation error.
func applyEnvOverrides(cfg *Config) error {
	var errs []FieldError

	parseInt := func(name string, field string, dst *int) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s%s: %v", EnvPrefix, name, err)})
				return
			}
			*dst = i
		}
	}
	parseBool := func(name string, field string, dst *bool) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			b, err := strconv.ParseBool(val)
			if err != nil {
				errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("%s%s: %v", EnvPrefix, name, err)})
				return
			}
			*dst = b
		}
	}
	parseString := func(name string, dst *string) {
		if val := os.Getenv(EnvPrefix + name); val != "" {
			*dst = val
		}
	}

	// Parser and reducer overrides
	parseInt("PARSER_MAX_DEPTH", "parser.max_depth", &cfg.Parser.MaxDepth)
	parseBool("REDUCER_TRACE", "reducer.trace", &cfg.Reducer.Trace)

	// Watch overrides
	if val := os.Getenv(EnvPrefix + "WATCH_DEBOUNCE"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			errs = append(errs, FieldError{Field: "watch.debounce", Message: fmt.Sprintf("%sWATCH_DEBOUNCE: %v", EnvPrefix, err)})
		} else {
			cfg.Watch.Debounce = d
		}
	}
	if val := os.Getenv(EnvPrefix + "WATCH_EXTENSIONS"); val != "" {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		cfg.Watch.Extensions = exts
	}

	// Telemetry overrides
	parseString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	parseString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	parseBool("TELEMETRY_LOGGING_ADD_SOURCE", "telemetry.logging.add_source", &cfg.Telemetry.Logging.AddSource)
	parseBool("TELEMETRY_METRICS_ENABLED", "telemetry.metrics.enabled", &cfg.Telemetry.Metrics.Enabled)
	parseString("TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	parseString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	parseString("TELEMETRY_METRICS_NAMESPACE", &cfg.Telemetry.Metrics.Namespace)
	parseString("TELEMETRY_METRICS_SUBSYSTEM", &cfg.Telemetry.Metrics.Subsystem)

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment override: %w", ValidationError{Errors: errs})
	}
	return nil
}
