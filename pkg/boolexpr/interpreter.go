package boolexpr

import (
	"context"
	"log/slog"
	"time"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/boolexpr/eval"
	"mercator-hq/boolexpr/pkg/boolexpr/parser"
	"mercator-hq/boolexpr/pkg/config"
	"mercator-hq/boolexpr/pkg/sexp"
	"mercator-hq/boolexpr/pkg/telemetry/logging"
)

// Recorder receives measurements from an Interpreter.
// *metrics.Collector implements it.
type Recorder interface {
	RecordParse(outcome string, size int)
	RecordEvaluation(result string, duration time.Duration)
	RecordRewrite(rule string)
}

// Outcome and result labels passed to a Recorder.
const (
	outcomeOK   = "ok"
	resultTrue  = "true"
	resultFalse = "false"
	resultError = "error"
)

// Result is the outcome of one Interpreter run.
type Result struct {
	RunID    string        // Run identifier, also attached to log records
	Input    string        // Rendering of the input tree
	Expr     ast.Expr      // Translated AST
	Value    bool          // Reduced value
	Trace    []eval.Step   // Rewrites in order, when tracing is enabled
	Duration time.Duration // Time spent translating and reducing
}

// Literal returns the reduced value as ast.True{} or ast.False{}.
func (r *Result) Literal() ast.Expr {
	return ast.Bool(r.Value)
}

// Interpreter translates and reduces trees with shared configuration.
// It is safe for concurrent use.
type Interpreter struct {
	parser   *parser.Parser
	reducer  *eval.Reducer
	logger   *slog.Logger
	recorder Recorder
}

// Option configures an Interpreter.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	recorder Recorder
	maxDepth int
	trace    bool
}

// WithLogger sets the logger for the interpreter, its parser and reducer.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder sends parse, evaluation and rewrite measurements to r.
func WithRecorder(r Recorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithMaxDepth limits tree nesting; zero means unlimited.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithTrace records every rewrite in Result.Trace.
func WithTrace(enabled bool) Option {
	return func(o *options) {
		o.trace = enabled
	}
}

// NewInterpreter creates an interpreter.
func NewInterpreter(opts ...Option) *Interpreter {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	reducerOpts := []eval.Option{
		eval.WithLogger(o.logger),
		eval.WithTrace(o.trace),
	}
	if o.recorder != nil {
		recorder := o.recorder
		reducerOpts = append(reducerOpts, eval.WithObserver(func(rule eval.Rule) {
			recorder.RecordRewrite(string(rule))
		}))
	}

	return &Interpreter{
		parser:   parser.NewParser().WithMaxDepth(o.maxDepth).WithLogger(o.logger),
		reducer:  eval.NewReducer(reducerOpts...),
		logger:   o.logger,
		recorder: o.recorder,
	}
}

// NewInterpreterFromConfig creates an interpreter from the parser and
// reducer sections of cfg. Options are applied after the configuration.
func NewInterpreterFromConfig(cfg *config.Config, opts ...Option) *Interpreter {
	base := []Option{
		WithMaxDepth(cfg.Parser.MaxDepth),
		WithTrace(cfg.Reducer.Trace),
	}
	return NewInterpreter(append(base, opts...)...)
}

// Parser returns the interpreter's parser.
func (i *Interpreter) Parser() *parser.Parser {
	return i.parser
}

// Tracing reports whether runs record a trace.
func (i *Interpreter) Tracing() bool {
	return i.reducer.Tracing()
}

// Run translates tree and reduces it. Errors are *bxErrors.Error values of
// type ErrorTypeSyntax or ErrorTypeUnreducible.
//
// ctx is used only for log correlation: a run ID is taken from it, or
// created if absent. Translation and reduction have no cancellation points.
func (i *Interpreter) Run(ctx context.Context, tree sexp.Value) (*Result, error) {
	ctx, runID := logging.EnsureRunID(ctx)
	start := time.Now()

	expr, err := i.parser.Parse(tree)
	if err != nil {
		i.recordParse(err, 0)
		i.logger.DebugContext(ctx, "translation failed", "error", err)
		return nil, err
	}
	i.recordParse(nil, ast.Size(expr))

	return i.reduce(ctx, runID, start, renderTree(tree), expr)
}

// RunString reads src as s-expression text and runs it. Read failures are
// returned as ErrorTypeRead.
func (i *Interpreter) RunString(ctx context.Context, src string) (*Result, error) {
	return i.RunSource(ctx, src, "")
}

// RunSource is like RunString; source names the text in error positions.
func (i *Interpreter) RunSource(ctx context.Context, src, source string) (*Result, error) {
	tree, err := sexp.ReadSource(src, source)
	if err != nil {
		readErr := bxErrors.FromReadError(err)
		i.recordParse(readErr, 0)
		return nil, readErr
	}
	return i.Run(ctx, tree)
}

// RunExpr reduces an AST that was translated elsewhere.
func (i *Interpreter) RunExpr(ctx context.Context, expr ast.Expr) (*Result, error) {
	ctx, runID := logging.EnsureRunID(ctx)
	input := "<nil>"
	if expr != nil {
		input = expr.String()
	}
	return i.reduce(ctx, runID, time.Now(), input, expr)
}

func (i *Interpreter) reduce(ctx context.Context, runID string, start time.Time, input string, expr ast.Expr) (*Result, error) {
	var (
		value ast.Expr
		steps []eval.Step
		err   error
	)

	evalStart := time.Now()
	if i.reducer.Tracing() {
		value, steps, err = i.reducer.EvalTrace(expr)
	} else {
		value, err = i.reducer.Eval(expr)
	}
	evalDuration := time.Since(evalStart)

	if err != nil {
		i.recordEvaluation(resultError, evalDuration)
		i.logger.DebugContext(ctx, "reduction failed", "error", err)
		return nil, err
	}

	b, _ := ast.ToBool(value)
	if b {
		i.recordEvaluation(resultTrue, evalDuration)
	} else {
		i.recordEvaluation(resultFalse, evalDuration)
	}

	result := &Result{
		RunID:    runID,
		Input:    input,
		Expr:     expr,
		Value:    b,
		Trace:    steps,
		Duration: time.Since(start),
	}

	i.logger.DebugContext(ctx, "expression reduced",
		"value", value.String(),
		"rewrites", len(steps),
		"duration", result.Duration,
	)

	return result, nil
}

func (i *Interpreter) recordParse(err error, size int) {
	if i.recorder == nil {
		return
	}
	if err != nil {
		i.recorder.RecordParse(string(bxErrors.TypeOf(err)), 0)
		return
	}
	i.recorder.RecordParse(outcomeOK, size)
}

func (i *Interpreter) recordEvaluation(result string, duration time.Duration) {
	if i.recorder != nil {
		i.recorder.RecordEvaluation(result, duration)
	}
}

func renderTree(tree sexp.Value) string {
	if tree == nil {
		return "<nil>"
	}
	return tree.String()
}
