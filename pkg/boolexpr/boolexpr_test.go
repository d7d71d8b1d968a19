package boolexpr

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/config"
	"mercator-hq/boolexpr/pkg/sexp"
	"mercator-hq/boolexpr/pkg/telemetry/logging"
)

func TestEvalString(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Expr
	}{
		{"T", ast.True{}},
		{"F", ast.False{}},
		{"(T)", ast.True{}},
		{"(NOT T)", ast.False{}},
		{"(AND (OR F T) (NOT F))", ast.True{}},
		{"(NOT (NOT (NOT T)))", ast.False{}},
		{"(IF (AND T T) (OR F F) T)", ast.False{}},
		{"((IF ((F)) T ((F))))", ast.False{}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := EvalString(tt.src)
			if err != nil {
				t.Fatalf("EvalString(%q) error: %v", tt.src, err)
			}
			if got != tt.want {
				t.Errorf("EvalString(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestEvalString_Errors(t *testing.T) {
	tests := []struct {
		src      string
		wantType bxErrors.ErrorType
	}{
		{"(AND T)", bxErrors.ErrorTypeSyntax},
		{"(XOR T F)", bxErrors.ErrorTypeSyntax},
		{"()", bxErrors.ErrorTypeSyntax},
		{"(AND T F", bxErrors.ErrorTypeRead},
		{"", bxErrors.ErrorTypeRead},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := EvalString(tt.src)
			if err == nil {
				t.Fatalf("EvalString(%q) expected error", tt.src)
			}
			if got := bxErrors.TypeOf(err); got != tt.wantType {
				t.Errorf("EvalString(%q) error type = %q, want %q (%v)", tt.src, got, tt.wantType, err)
			}
		})
	}
}

func TestParseAndEval(t *testing.T) {
	tree := sexp.List(sexp.OR, sexp.F, sexp.List(sexp.NOT, sexp.F))

	got, err := ParseAndEval(tree)
	if err != nil {
		t.Fatalf("ParseAndEval() failed: %v", err)
	}
	if got != (ast.True{}) {
		t.Errorf("ParseAndEval() = %s, want True", got)
	}

	if _, err := ParseAndEval(sexp.List(sexp.IF, sexp.T)); !errors.Is(err, bxErrors.ErrInvalidSyntax) {
		t.Errorf("ParseAndEval() on bad arity = %v, want ErrInvalidSyntax", err)
	}
}

func TestParseThenEval(t *testing.T) {
	expr, err := Parse(sexp.List(sexp.AND, sexp.T, sexp.F))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if expr.String() != "And(True,False)" {
		t.Errorf("Parse() = %s", expr)
	}

	got, err := Eval(expr)
	if err != nil {
		t.Fatalf("Eval() failed: %v", err)
	}
	if got != (ast.False{}) {
		t.Errorf("Eval() = %s, want False", got)
	}
}

// fakeRecorder counts what an Interpreter reports.
type fakeRecorder struct {
	mu       sync.Mutex
	parses   map[string]int
	results  map[string]int
	rewrites map[string]int
	sizes    []int
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{
		parses:   make(map[string]int),
		results:  make(map[string]int),
		rewrites: make(map[string]int),
	}
}

func (f *fakeRecorder) RecordParse(outcome string, size int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.parses[outcome]++
	if outcome == "ok" {
		f.sizes = append(f.sizes, size)
	}
}

func (f *fakeRecorder) RecordEvaluation(result string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[result]++
}

func (f *fakeRecorder) RecordRewrite(rule string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rewrites[rule]++
}

func TestInterpreter_Run(t *testing.T) {
	interp := NewInterpreter(WithLogger(logging.Discard()))

	tree, err := sexp.Read("(AND (OR F T) (NOT F))")
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}

	result, err := interp.Run(context.Background(), tree)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if !result.Value {
		t.Error("Run().Value = false, want true")
	}
	if result.Literal() != (ast.True{}) {
		t.Errorf("Run().Literal() = %s, want True", result.Literal())
	}
	if result.Input != "(AND (OR F T) (NOT F))" {
		t.Errorf("Run().Input = %q", result.Input)
	}
	if result.Expr.String() != "And(Or(False,True),Not(False))" {
		t.Errorf("Run().Expr = %s", result.Expr)
	}
	if result.RunID == "" {
		t.Error("Run().RunID is empty")
	}
	if result.Trace != nil {
		t.Errorf("Run().Trace = %v, want nil without tracing", result.Trace)
	}
	if result.Duration <= 0 {
		t.Errorf("Run().Duration = %v, want > 0", result.Duration)
	}
}

func TestInterpreter_RunKeepsRunID(t *testing.T) {
	interp := NewInterpreter(WithLogger(logging.Discard()))
	ctx := logging.WithRunID(context.Background(), "fixed-id")

	result, err := interp.RunString(ctx, "T")
	if err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}
	if result.RunID != "fixed-id" {
		t.Errorf("RunID = %q, want %q", result.RunID, "fixed-id")
	}
}

func TestInterpreter_Trace(t *testing.T) {
	interp := NewInterpreter(WithLogger(logging.Discard()), WithTrace(true))
	if !interp.Tracing() {
		t.Fatal("Tracing() = false")
	}

	result, err := interp.RunString(context.Background(), "(NOT (NOT T))")
	if err != nil {
		t.Fatalf("RunString() failed: %v", err)
	}

	want := []string{
		"not-true: Not(True) => False",
		"not-reduce: Not(Not(True)) => Not(False)",
		"not-false: Not(False) => True",
	}
	if len(result.Trace) != len(want) {
		t.Fatalf("trace has %d steps, want %d: %v", len(result.Trace), len(want), result.Trace)
	}
	for i, step := range result.Trace {
		if step.String() != want[i] {
			t.Errorf("step %d = %q, want %q", i, step.String(), want[i])
		}
	}
}

func TestInterpreter_MaxDepth(t *testing.T) {
	interp := NewInterpreter(WithLogger(logging.Discard()), WithMaxDepth(2))

	if _, err := interp.RunString(context.Background(), "(NOT T)"); err != nil {
		t.Errorf("depth 2 should be accepted: %v", err)
	}

	_, err := interp.RunString(context.Background(), "(NOT (NOT T))")
	if !errors.Is(err, bxErrors.ErrInvalidSyntax) {
		t.Errorf("depth 3 error = %v, want ErrInvalidSyntax", err)
	}
}

func TestInterpreter_Recorder(t *testing.T) {
	rec := newFakeRecorder()
	interp := NewInterpreter(WithLogger(logging.Discard()), WithRecorder(rec))
	ctx := context.Background()

	for _, src := range []string{"(AND T F)", "(OR F T)", "(AND T)", "(OR"} {
		_, _ = interp.RunString(ctx, src)
	}
	if _, err := interp.RunExpr(ctx, ast.Not{}); err == nil {
		t.Error("RunExpr(Not{}) should fail")
	}

	if rec.parses["ok"] != 2 || rec.parses["syntax"] != 1 || rec.parses["read"] != 1 {
		t.Errorf("parses = %v", rec.parses)
	}
	if rec.results["true"] != 1 || rec.results["false"] != 1 || rec.results["error"] != 1 {
		t.Errorf("results = %v", rec.results)
	}
	if rec.rewrites["and-true"] != 1 || rec.rewrites["or-false"] != 1 {
		t.Errorf("rewrites = %v", rec.rewrites)
	}
	if len(rec.sizes) != 2 || rec.sizes[0] != 3 {
		t.Errorf("sizes = %v, want [3 3]", rec.sizes)
	}
}

func TestInterpreter_RunExpr(t *testing.T) {
	interp := NewInterpreter(WithLogger(logging.Discard()))

	result, err := interp.RunExpr(context.Background(), ast.If{C: ast.False{}, E1: ast.True{}, E2: ast.False{}})
	if err != nil {
		t.Fatalf("RunExpr() failed: %v", err)
	}
	if result.Value {
		t.Error("RunExpr().Value = true, want false")
	}
	if result.Input != "If(False,True,False)" {
		t.Errorf("RunExpr().Input = %q", result.Input)
	}

	_, err = interp.RunExpr(context.Background(), nil)
	if !errors.Is(err, bxErrors.ErrUnreducible) {
		t.Errorf("RunExpr(nil) = %v, want ErrUnreducible", err)
	}
}

func TestInterpreter_RunSourcePosition(t *testing.T) {
	interp := NewInterpreter(WithLogger(logging.Discard()))

	_, err := interp.RunSource(context.Background(), "(AND T\n  F", "exprs.sexp")
	var bxErr *bxErrors.Error
	if !errors.As(err, &bxErr) {
		t.Fatalf("RunSource() error = %v, want *bxErrors.Error", err)
	}
	if bxErr.Position.Source != "exprs.sexp" {
		t.Errorf("Position.Source = %q, want exprs.sexp", bxErr.Position.Source)
	}
}

func TestInterpreter_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Config{Level: "debug", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	interp := NewInterpreter(WithLogger(logger))
	ctx := logging.WithRunID(context.Background(), "run-42")
	if _, err := interp.RunString(ctx, "(OR T F)"); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{`msg="expression reduced"`, "run_id=run-42", "value=True", "rule=or-true"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
}

func TestNewInterpreterFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Parser.MaxDepth = 1
	cfg.Reducer.Trace = true

	interp := NewInterpreterFromConfig(cfg, WithLogger(logging.Discard()))
	if interp.Parser().MaxDepth() != 1 {
		t.Errorf("MaxDepth() = %d, want 1", interp.Parser().MaxDepth())
	}
	if !interp.Tracing() {
		t.Error("Tracing() = false, want true")
	}

	// Options override configuration
	interp = NewInterpreterFromConfig(cfg, WithTrace(false))
	if interp.Tracing() {
		t.Error("WithTrace(false) did not override reducer.trace")
	}
}

func TestInterpreter_Concurrent(t *testing.T) {
	interp := NewInterpreter(WithLogger(logging.Discard()), WithRecorder(newFakeRecorder()), WithTrace(true))

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				result, err := interp.RunString(context.Background(), "(IF (NOT F) (AND T T) F)")
				if err != nil {
					t.Error(err)
					return
				}
				if !result.Value {
					t.Error("got false, want true")
					return
				}
			}
		}()
	}
	wg.Wait()
}
