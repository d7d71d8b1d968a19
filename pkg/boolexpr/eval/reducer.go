package eval

import (
	"context"
	"fmt"
	"log/slog"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
)

// Reducer rewrites boolean expressions to True or False.
// A Reducer holds only configuration and is safe for concurrent use.
type Reducer struct {
	logger   *slog.Logger
	observer func(Rule)
	trace    bool
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reducer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver registers a function called for every rule that fires.
// It is called synchronously from the reducing goroutine.
func WithObserver(observer func(Rule)) Option {
	return func(r *Reducer) {
		r.observer = observer
	}
}

// WithTrace marks the reducer as tracing. Callers that honour reducer
// configuration, such as the boolexpr Interpreter, then use EvalTrace.
func WithTrace(enabled bool) Option {
	return func(r *Reducer) {
		r.trace = enabled
	}
}

// NewReducer creates a new reducer.
func NewReducer(opts ...Option) *Reducer {
	r := &Reducer{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tracing reports whether the reducer was created WithTrace(true).
func (r *Reducer) Tracing() bool {
	return r.trace
}

// Eval reduces e to ast.True{} or ast.False{}.
// It returns a *bxErrors.Error of type ErrorTypeUnreducible if e contains
// a node outside the six variants.
func (r *Reducer) Eval(e ast.Expr) (ast.Expr, error) {
	run := r.newReduction(false)
	return run.eval(e, 0)
}

// EvalTrace is like Eval but also returns every rewrite that fired, in order.
func (r *Reducer) EvalTrace(e ast.Expr) (ast.Expr, []Step, error) {
	run := r.newReduction(true)
	result, err := run.eval(e, 0)
	return result, run.steps, err
}

// Eval reduces e with a default reducer.
func Eval(e ast.Expr) (ast.Expr, error) {
	return NewReducer().Eval(e)
}

// EvalBool reduces e and converts the literal to a Go bool.
func EvalBool(e ast.Expr) (bool, error) {
	result, err := Eval(e)
	if err != nil {
		return false, err
	}
	value, _ := ast.ToBool(result)
	return value, nil
}

// reduction holds the per-call state of one Eval.
type reduction struct {
	reducer *Reducer
	debug   bool
	record  bool
	steps   []Step
}

func (r *Reducer) newReduction(record bool) *reduction {
	return &reduction{
		reducer: r,
		debug:   r.logger.Enabled(context.Background(), slog.LevelDebug),
		record:  record,
	}
}

// fire reports a rewrite to the observer, the trace and the debug log.
func (x *reduction) fire(rule Rule, from, to ast.Expr, depth int) {
	if x.reducer.observer != nil {
		x.reducer.observer(rule)
	}
	if x.record {
		x.steps = append(x.steps, Step{Rule: rule, From: from, To: to, Depth: depth})
	}
	if x.debug {
		x.reducer.logger.Debug("rewrite",
			"rule", rule,
			"from", describe(from),
			"to", describe(to),
			"depth", depth,
		)
	}
}

// eval applies the rewrite rules. Literal cases come first, then the
// short-circuit rules on a literal operand, then the operand reduction that
// turns a compound operand into a literal and re-applies the operator.
// Every recursive call is on a strictly smaller term or on the same operator
// with a literal operand, so reduction terminates on any finite tree.
func (x *reduction) eval(e ast.Expr, depth int) (ast.Expr, error) {
	switch n := e.(type) {
	case ast.True:
		return n, nil
	case ast.False:
		return n, nil
	case ast.Not:
		return x.evalNot(n, depth)
	case ast.And:
		return x.evalAnd(n, depth)
	case ast.Or:
		return x.evalOr(n, depth)
	case ast.If:
		return x.evalIf(n, depth)
	case nil:
		return nil, bxErrors.NewUnreducibleError("nil expression", nil)
	default:
		return nil, bxErrors.NewUnreducibleError(fmt.Sprintf("unknown expression type %T", e), e)
	}
}

func (x *reduction) evalNot(n ast.Not, depth int) (ast.Expr, error) {
	switch n.E.(type) {
	case ast.True:
		x.fire(RuleNotTrue, n, ast.False{}, depth)
		return ast.False{}, nil
	case ast.False:
		x.fire(RuleNotFalse, n, ast.True{}, depth)
		return ast.True{}, nil
	}

	operand, err := x.eval(n.E, depth+1)
	if err != nil {
		return nil, err
	}
	next := ast.Not{E: operand}
	x.fire(RuleNotReduce, n, next, depth)
	return x.eval(next, depth)
}

func (x *reduction) evalAnd(n ast.And, depth int) (ast.Expr, error) {
	switch n.E1.(type) {
	case ast.True:
		x.fire(RuleAndTrue, n, n.E2, depth)
		return x.eval(n.E2, depth+1)
	case ast.False:
		// Short-circuit: E2 is never inspected.
		x.fire(RuleAndFalse, n, ast.False{}, depth)
		return ast.False{}, nil
	}

	left, err := x.eval(n.E1, depth+1)
	if err != nil {
		return nil, err
	}
	next := ast.And{E1: left, E2: n.E2}
	x.fire(RuleAndReduce, n, next, depth)
	return x.eval(next, depth)
}

func (x *reduction) evalOr(n ast.Or, depth int) (ast.Expr, error) {
	switch n.E1.(type) {
	case ast.True:
		// Short-circuit: E2 is never inspected.
		x.fire(RuleOrTrue, n, ast.True{}, depth)
		return ast.True{}, nil
	case ast.False:
		x.fire(RuleOrFalse, n, n.E2, depth)
		return x.eval(n.E2, depth+1)
	}

	left, err := x.eval(n.E1, depth+1)
	if err != nil {
		return nil, err
	}
	next := ast.Or{E1: left, E2: n.E2}
	x.fire(RuleOrReduce, n, next, depth)
	return x.eval(next, depth)
}

func (x *reduction) evalIf(n ast.If, depth int) (ast.Expr, error) {
	switch n.C.(type) {
	case ast.True:
		x.fire(RuleIfTrue, n, n.E1, depth)
		return x.eval(n.E1, depth+1)
	case ast.False:
		x.fire(RuleIfFalse, n, n.E2, depth)
		return x.eval(n.E2, depth+1)
	}

	cond, err := x.eval(n.C, depth+1)
	if err != nil {
		return nil, err
	}
	next := ast.If{C: cond, E1: n.E1, E2: n.E2}
	x.fire(RuleIfReduce, n, next, depth)
	return x.eval(next, depth)
}
