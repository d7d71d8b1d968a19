// Package eval reduces boolean ASTs to a literal by term rewriting.
//
// The reducer applies a fixed set of rules (see Rules). And, Or and If
// short-circuit: once the deciding operand is a literal, the discarded
// operand is never inspected, so a malformed subtree in a branch that is
// not taken does not produce an error.
//
// Basic usage:
//
//	result, err := eval.Eval(expr)
//	if err != nil {
//	    // errors.Is(err, bxErrors.ErrUnreducible)
//	}
//
// Tracing every rewrite:
//
//	result, steps, err := eval.NewReducer().EvalTrace(expr)
//	for _, s := range steps {
//	    fmt.Println(s)
//	}
package eval
