package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "boolexpr.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
parser:
  max_depth: 128

reducer:
  trace: true

watch:
  debounce: "250ms"
  extensions: [".sexp"]

telemetry:
  logging:
    level: "debug"
    format: "text"
  metrics:
    enabled: true
    listen_address: "0.0.0.0:9000"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxDepth != 128 {
		t.Errorf("expected max depth 128, got %d", cfg.Parser.MaxDepth)
	}
	if !cfg.Reducer.Trace {
		t.Error("expected reducer trace to be enabled")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("expected debounce 250ms, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".sexp" {
		t.Errorf("expected extensions [.sexp], got %v", cfg.Watch.Extensions)
	}
	if cfg.Telemetry.Logging.Level != "debug" {
		t.Errorf("expected logging level debug, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Metrics.ListenAddress != "0.0.0.0:9000" {
		t.Errorf("expected listen address 0.0.0.0:9000, got %q", cfg.Telemetry.Metrics.ListenAddress)
	}

	// Defaults fill the rest
	if cfg.Telemetry.Metrics.Path != DefaultPrometheusPath {
		t.Errorf("expected default metrics path, got %q", cfg.Telemetry.Metrics.Path)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got: %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "parser: [unclosed\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse configuration file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, "telemetry:\n  logging:\n    level: loud\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "parser:\n  max_depth: 10\n")

	t.Setenv("BOOLEXPR_PARSER_MAX_DEPTH", "20")
	t.Setenv("BOOLEXPR_REDUCER_TRACE", "true")
	t.Setenv("BOOLEXPR_WATCH_DEBOUNCE", "2s")
	t.Setenv("BOOLEXPR_WATCH_EXTENSIONS", ".sexp, .lisp,")
	t.Setenv("BOOLEXPR_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("BOOLEXPR_TELEMETRY_METRICS_ENABLED", "1")
	t.Setenv("BOOLEXPR_TELEMETRY_METRICS_NAMESPACE", "bx")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxDepth != 20 {
		t.Errorf("expected max depth 20, got %d", cfg.Parser.MaxDepth)
	}
	if !cfg.Reducer.Trace {
		t.Error("expected reducer trace to be enabled")
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Watch.Extensions) != 2 || cfg.Watch.Extensions[1] != ".lisp" {
		t.Errorf("expected extensions [.sexp .lisp], got %v", cfg.Watch.Extensions)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected logging level warn, got %q", cfg.Telemetry.Logging.Level)
	}
	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to be enabled")
	}
	if cfg.Telemetry.Metrics.Namespace != "bx" {
		t.Errorf("expected namespace bx, got %q", cfg.Telemetry.Metrics.Namespace)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidValue(t *testing.T) {
	path := writeConfig(t, "{}\n")
	t.Setenv("BOOLEXPR_PARSER_MAX_DEPTH", "deep")

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		t.Fatal("expected error for unparsable override")
	}
	if !strings.Contains(err.Error(), "BOOLEXPR_PARSER_MAX_DEPTH") {
		t.Errorf("error should name the variable: %v", err)
	}
}

func TestLoadConfigWithEnvOverrides_InvalidResult(t *testing.T) {
	path := writeConfig(t, "{}\n")
	t.Setenv("BOOLEXPR_TELEMETRY_LOGGING_FORMAT", "yaml")

	_, err := LoadConfigWithEnvOverrides(path)
	if err == nil {
		t.Fatal("expected validation error after overrides")
	}
	if !strings.Contains(err.Error(), "after environment overrides") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "boolexpr.yaml")

	cfg, err := LoadOrDefault(missing, false)
	if err != nil {
		t.Fatalf("LoadOrDefault() with optional missing file: %v", err)
	}
	if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
		t.Errorf("expected default logging level, got %q", cfg.Telemetry.Logging.Level)
	}

	if _, err := LoadOrDefault(missing, true); err == nil {
		t.Error("LoadOrDefault() with required missing file should fail")
	}

	bad := writeConfig(t, "parser: [\n")
	if _, err := LoadOrDefault(bad, false); err == nil {
		t.Error("LoadOrDefault() should report parse errors even when optional")
	}
}

func TestLoadOrDefault_EnvApplied(t *testing.T) {
	t.Setenv("BOOLEXPR_PARSER_MAX_DEPTH", "7")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "none.yaml"), false)
	if err != nil {
		t.Fatalf("LoadOrDefault(): %v", err)
	}
	if cfg.Parser.MaxDepth != 7 {
		t.Errorf("expected max depth 7, got %d", cfg.Parser.MaxDepth)
	}
}
