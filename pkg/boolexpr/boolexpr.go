package boolexpr

import (
	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	"mercator-hq/boolexpr/pkg/boolexpr/eval"
	"mercator-hq/boolexpr/pkg/boolexpr/parser"
	"mercator-hq/boolexpr/pkg/sexp"
)

// ParseAndEval is a convenience function that translates tree and reduces it.
// It returns ast.True{} or ast.False{}, or the first error encountered.
func ParseAndEval(tree sexp.Value) (ast.Expr, error) {
	expr, err := parser.Parse(tree)
	if err != nil {
		return nil, err
	}
	return eval.Eval(expr)
}

// EvalString reads src as s-expression text, translates and reduces it.
func EvalString(src string) (ast.Expr, error) {
	expr, err := parser.ParseString(src)
	if err != nil {
		return nil, err
	}
	return eval.Eval(expr)
}

// Parse translates tree without reducing it.
// Use this if you want to inspect the AST.
func Parse(tree sexp.Value) (ast.Expr, error) {
	return parser.Parse(tree)
}

// Eval reduces a translated AST.
func Eval(expr ast.Expr) (ast.Expr, error) {
	return eval.Eval(expr)
}
