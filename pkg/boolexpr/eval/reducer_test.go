package eval

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
)

var (
	tru = ast.True{}
	fls = ast.False{}
)

// foreign embeds a variant to satisfy ast.Expr without being one of the six.
type foreign struct {
	ast.True
}

func TestEval_Laws(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
		want ast.Expr
	}{
		{"true", tru, tru},
		{"false", fls, fls},
		{"not true", ast.Not{E: tru}, fls},
		{"not false", ast.Not{E: fls}, tru},
		{"and true true", ast.And{E1: tru, E2: tru}, tru},
		{"and true false", ast.And{E1: tru, E2: fls}, fls},
		{"and false true", ast.And{E1: fls, E2: tru}, fls},
		{"or false false", ast.Or{E1: fls, E2: fls}, fls},
		{"or false true", ast.Or{E1: fls, E2: tru}, tru},
		{"or true false", ast.Or{E1: tru, E2: fls}, tru},
		{"if true", ast.If{C: tru, E1: fls, E2: tru}, fls},
		{"if false", ast.If{C: fls, E1: fls, E2: tru}, tru},
		{
			"nested",
			ast.And{E1: ast.Or{E1: fls, E2: tru}, E2: ast.Not{E: fls}},
			tru,
		},
		{"deep not", ast.Not{E: ast.Not{E: ast.Not{E: tru}}}, fls},
		{
			"compound condition",
			ast.If{C: ast.And{E1: tru, E2: ast.Not{E: fls}}, E1: ast.Or{E1: fls, E2: fls}, E2: tru},
			fls,
		},
		{
			"compound branches",
			ast.If{C: ast.Not{E: tru}, E1: tru, E2: ast.If{C: fls, E1: tru, E2: ast.Not{E: fls}}},
			tru,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "Eval(%s)", tt.expr)
		})
	}
}

func TestEval_ShortCircuit(t *testing.T) {
	// The discarded operand is malformed; short-circuiting must never look at it.
	bad := ast.Not{E: nil}

	tests := []struct {
		name string
		expr ast.Expr
		want ast.Expr
	}{
		{"and false", ast.And{E1: fls, E2: bad}, fls},
		{"and false nil", ast.And{E1: fls, E2: nil}, fls},
		{"and compound false", ast.And{E1: ast.Not{E: tru}, E2: bad}, fls},
		{"or true", ast.Or{E1: tru, E2: bad}, tru},
		{"or compound true", ast.Or{E1: ast.Not{E: fls}, E2: foreign{}}, tru},
		{"if true", ast.If{C: tru, E1: fls, E2: bad}, fls},
		{"if false", ast.If{C: fls, E1: bad, E2: tru}, tru},
		{"if compound", ast.If{C: ast.Or{E1: fls, E2: tru}, E1: tru, E2: nil}, tru},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_Unreducible(t *testing.T) {
	tests := []struct {
		name string
		expr ast.Expr
	}{
		{"nil", nil},
		{"foreign", foreign{}},
		{"not nil", ast.Not{}},
		{"and true nil", ast.And{E1: tru}},
		{"and nil left", ast.And{E2: tru}},
		{"or false foreign", ast.Or{E1: fls, E2: foreign{}}},
		{"if nil condition", ast.If{E1: tru, E2: fls}},
		{"if selected nil", ast.If{C: ast.Not{E: fls}, E2: fls}},
		{"nested foreign", ast.Not{E: ast.And{E1: tru, E2: ast.Not{E: foreign{}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Eval(tt.expr)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, bxErrors.ErrUnreducible), "errors.Is(%v, ErrUnreducible)", err)
			assert.Equal(t, bxErrors.ErrorTypeUnreducible, bxErrors.TypeOf(err))
		})
	}
}

func TestEval_Unreducible_Message(t *testing.T) {
	_, err := Eval(foreign{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown expression type eval.foreign")
}

// truth is an oracle written directly in Go booleans.
func truth(e ast.Expr) bool {
	switch n := e.(type) {
	case ast.True:
		return true
	case ast.Not:
		return !truth(n.E)
	case ast.And:
		return truth(n.E1) && truth(n.E2)
	case ast.Or:
		return truth(n.E1) || truth(n.E2)
	case ast.If:
		if truth(n.C) {
			return truth(n.E1)
		}
		return truth(n.E2)
	default:
		return false
	}
}

// enumerate returns every expression of at most the given depth.
func enumerate(depth int) []ast.Expr {
	out := []ast.Expr{tru, fls}
	if depth <= 1 {
		return out
	}
	sub := enumerate(depth - 1)
	for _, a := range sub {
		out = append(out, ast.Not{E: a})
		for _, b := range sub {
			out = append(out, ast.And{E1: a, E2: b}, ast.Or{E1: a, E2: b})
			for _, c := range sub {
				out = append(out, ast.If{C: a, E1: b, E2: c})
			}
		}
	}
	return out
}

func TestEval_Exhaustive(t *testing.T) {
	exprs := enumerate(3)
	require.Len(t, exprs, 8822)

	r := NewReducer()
	for _, e := range exprs {
		got, err := r.Eval(e)
		require.NoError(t, err, "Eval(%s)", e)
		require.True(t, ast.IsLiteral(got), "Eval(%s) = %s is not a literal", e, got)
		require.Equal(t, ast.Bool(truth(e)), got, "Eval(%s)", e)

		again, err := r.Eval(got)
		require.NoError(t, err)
		require.Equal(t, got, again, "Eval is not idempotent on %s", e)
	}
}

func TestEval_SharedSubtree(t *testing.T) {
	shared := ast.And{E1: ast.Not{E: fls}, E2: ast.Or{E1: fls, E2: tru}}

	got, err := Eval(ast.If{C: fls, E1: shared, E2: shared})
	require.NoError(t, err)
	assert.Equal(t, tru, got)

	got, err = Eval(ast.If{C: shared, E1: ast.Not{E: shared}, E2: shared})
	require.NoError(t, err)
	assert.Equal(t, fls, got)

	// Reducing the shared subtree must not alter it for the other branch.
	assert.Equal(t, "And(Not(False),Or(False,True))", shared.String())
}

func TestEval_VeryDeep(t *testing.T) {
	var e ast.Expr = tru
	for i := 0; i < 10001; i++ {
		e = ast.Not{E: e}
	}
	got, err := Eval(e)
	require.NoError(t, err)
	assert.Equal(t, fls, got)
}

func TestEvalBool(t *testing.T) {
	v, err := EvalBool(ast.Or{E1: fls, E2: ast.Not{E: fls}})
	require.NoError(t, err)
	assert.True(t, v)

	_, err = EvalBool(nil)
	assert.Error(t, err)
}

func TestEvalTrace(t *testing.T) {
	expr := ast.And{E1: ast.Or{E1: fls, E2: tru}, E2: ast.Not{E: fls}}

	got, steps, err := NewReducer().EvalTrace(expr)
	require.NoError(t, err)
	assert.Equal(t, tru, got)

	var rules []Rule
	for _, s := range steps {
		rules = append(rules, s.Rule)
	}
	assert.Equal(t, []Rule{RuleOrFalse, RuleAndReduce, RuleAndTrue, RuleNotFalse}, rules)

	assert.Equal(t, "or-false: Or(False,True) => True", steps[0].String())
	assert.Equal(t, "and-reduce: And(Or(False,True),Not(False)) => And(True,Not(False))", steps[1].String())
	assert.Equal(t, 1, steps[0].Depth)
	assert.Equal(t, 0, steps[1].Depth)
}

func TestEvalTrace_ShortCircuitSkipsOperand(t *testing.T) {
	expr := ast.And{E1: fls, E2: ast.Not{E: ast.Not{E: tru}}}

	_, steps, err := NewReducer().EvalTrace(expr)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, RuleAndFalse, steps[0].Rule)

	_, err = NewReducer().Eval(expr)
	require.NoError(t, err)
}

func TestEvalTrace_Literal(t *testing.T) {
	got, steps, err := NewReducer().EvalTrace(tru)
	require.NoError(t, err)
	assert.Equal(t, tru, got)
	assert.Empty(t, steps)
}

func TestStep_StringNil(t *testing.T) {
	s := Step{Rule: RuleAndTrue, From: ast.And{E1: tru}, To: nil}
	assert.Equal(t, "and-true: And(True,<nil>) => <nil>", s.String())
}

func TestWithObserver(t *testing.T) {
	counts := make(map[Rule]int)
	r := NewReducer(WithObserver(func(rule Rule) { counts[rule]++ }))

	_, err := r.Eval(ast.If{C: ast.Not{E: ast.Not{E: tru}}, E1: ast.Or{E1: tru, E2: fls}, E2: fls})
	require.NoError(t, err)

	assert.Equal(t, map[Rule]int{
		RuleNotTrue:   1,
		RuleNotFalse:  1,
		RuleNotReduce: 1,
		RuleIfReduce:  1,
		RuleIfTrue:    1,
		RuleOrTrue:    1,
	}, counts)
}

func TestWithLogger_Debug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewReducer(WithLogger(logger)).Eval(ast.Not{E: tru})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=rewrite")
	assert.Contains(t, out, "rule=not-true")
	assert.Contains(t, out, "from=Not(True)")
}

func TestWithLogger_InfoIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	_, err := NewReducer(WithLogger(logger), WithLogger(nil)).Eval(ast.Not{E: tru})
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(buf.String()))
}

func TestRules(t *testing.T) {
	seen := make(map[Rule]bool)
	for _, r := range Rules {
		assert.False(t, seen[r], "duplicate rule %s", r)
		seen[r] = true
	}
	assert.Len(t, Rules, 12)
}

func TestReducer_Concurrent(t *testing.T) {
	r := NewReducer()
	exprs := enumerate(2)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, e := range exprs {
				got, err := r.Eval(e)
				if err != nil {
					errs <- err
					return
				}
				if got != ast.Bool(truth(e)) {
					errs <- errors.New("wrong result for " + e.String())
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestWithTrace(t *testing.T) {
	if NewReducer().Tracing() {
		t.Error("default reducer should not trace")
	}
	if !NewReducer(WithTrace(true)).Tracing() {
		t.Error("WithTrace(true) reducer should trace")
	}
}
