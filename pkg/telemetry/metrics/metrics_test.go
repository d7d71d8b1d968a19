package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mercator-hq/boolexpr/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		Subsystem:       "metrics",
		DurationBuckets: []float64{0.000001, 0.00001, 0.0001},
		SizeBuckets:     []float64{1, 4, 16},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector == nil {
		t.Fatal("Expected non-nil collector")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if !collector.Enabled() {
		t.Error("Collector should be enabled")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	collector := NewCollector(cfg, nil)

	if collector.Registry() == nil {
		t.Fatal("Expected a registry to be created")
	}
	if cfg.Namespace != config.DefaultMetricsNamespace {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, config.DefaultMetricsNamespace)
	}
	if len(cfg.DurationBuckets) == 0 || len(cfg.SizeBuckets) == 0 {
		t.Error("Expected default buckets to be set")
	}

	collector.RecordParse(OutcomeOK, 3)
	count, err := testutil.GatherAndCount(collector.Registry(), "boolexpr_interpreter_parses_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 parses_total series, got %d", count)
	}
}

func TestCollector_RecordParse(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordParse(OutcomeOK, 5)
	collector.RecordParse(OutcomeOK, 1)
	collector.RecordParse("syntax", 0)

	pm := collector.parseMetrics
	if got := testutil.ToFloat64(pm.parsesTotal.WithLabelValues(OutcomeOK)); got != 2 {
		t.Errorf("parses_total{outcome=ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(pm.parsesTotal.WithLabelValues("syntax")); got != 1 {
		t.Errorf("parses_total{outcome=syntax} = %v, want 1", got)
	}

	// Only successful parses are observed
	if got := testutil.CollectAndCount(pm.expressionSize); got != 1 {
		t.Errorf("Expected 1 expression_size series, got %d", got)
	}
	expected := `
# HELP test_metrics_expression_size Number of nodes in translated expressions
# TYPE test_metrics_expression_size histogram
test_metrics_expression_size_bucket{le="1"} 1
test_metrics_expression_size_bucket{le="4"} 1
test_metrics_expression_size_bucket{le="16"} 2
test_metrics_expression_size_bucket{le="+Inf"} 2
test_metrics_expression_size_sum 6
test_metrics_expression_size_count 2
`
	if err := testutil.CollectAndCompare(pm.expressionSize, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected expression_size: %v", err)
	}
}

func TestCollector_RecordEvaluation(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	tests := []struct {
		name     string
		result   string
		duration time.Duration
	}{
		{"true result", ResultTrue, 2 * time.Microsecond},
		{"false result", ResultFalse, 500 * time.Nanosecond},
		{"error result", ResultError, time.Microsecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector.RecordEvaluation(tt.result, tt.duration)

			got := testutil.ToFloat64(collector.evalMetrics.evaluationsTotal.WithLabelValues(tt.result))
			if got != 1 {
				t.Errorf("evaluations_total{result=%s} = %v, want 1", tt.result, got)
			}
		})
	}

	count, err := testutil.GatherAndCount(collector.Registry(), "test_metrics_evaluation_duration_seconds")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 duration series, got %d", count)
	}
}

func TestCollector_RecordRewrite(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordRewrite("and-true")
	collector.RecordRewrite("and-true")
	collector.RecordRewrite("not-false")

	rewrites := collector.evalMetrics.rewritesTotal
	if got := testutil.ToFloat64(rewrites.WithLabelValues("and-true")); got != 2 {
		t.Errorf("rewrites_total{rule=and-true} = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(rewrites); got != 2 {
		t.Errorf("Expected 2 rewrite series, got %d", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordParse(OutcomeOK, 3)
	collector.RecordEvaluation(ResultTrue, time.Microsecond)
	collector.RecordRewrite("or-true")

	if got := testutil.CollectAndCount(collector.parseMetrics.parsesTotal); got != 0 {
		t.Errorf("disabled collector recorded %d parse series", got)
	}
	if got := testutil.CollectAndCount(collector.evalMetrics.evaluationsTotal); got != 0 {
		t.Errorf("disabled collector recorded %d evaluation series", got)
	}
	if got := testutil.CollectAndCount(collector.evalMetrics.rewritesTotal); got != 0 {
		t.Errorf("disabled collector recorded %d rewrite series", got)
	}
}

func TestCollector_SeparateRegistries(t *testing.T) {
	// Two collectors with the same names must not panic on registration.
	a := NewCollector(testConfig(), nil)
	b := NewCollector(testConfig(), nil)

	a.RecordRewrite("if-true")
	if got := testutil.CollectAndCount(b.evalMetrics.rewritesTotal); got != 0 {
		t.Errorf("collectors share state: %d series in b", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordEvaluation(ResultFalse, time.Microsecond)

	server := httptest.NewServer(collector.Mux("/metrics"))
	defer server.Close()

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), `test_metrics_evaluations_total{result="false"} 1`) {
		t.Errorf("metrics output missing evaluation counter:\n%s", body)
	}
}

func TestCollector_HandlerWithOptions(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	collector.HandlerWithOptions(promhttp.HandlerOpts{ErrorHandling: promhttp.HTTPErrorOnError}).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
