// Package boolexpr translates symbolic-expression trees into boolean ASTs
// and reduces them to True or False.
//
// # Architecture
//
// The package is organized into subpackages:
//
//   - ast: the six-variant expression type (True, False, Not, And, Or, If)
//   - parser: translation of sexp trees into ASTs
//   - eval: term-rewriting reducer
//   - errors: rich error types with form, path and suggestions
//
// # Basic Usage
//
//	value, err := boolexpr.EvalString("(AND (OR F T) (NOT F))")
//	// value == ast.True{}
//
// With configuration, metrics and a trace:
//
//	interp := boolexpr.NewInterpreter(
//	    boolexpr.WithLogger(logger),
//	    boolexpr.WithRecorder(collector),
//	    boolexpr.WithTrace(true),
//	)
//	result, err := interp.Run(ctx, tree)
//	for _, step := range result.Trace {
//	    fmt.Println(step)
//	}
package boolexpr
