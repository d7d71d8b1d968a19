package eval

import (
	"fmt"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
)

// Rule names a rewrite rule of the reducer.
type Rule string

const (
	RuleNotTrue  Rule = "not-true"  // Not(True) -> False
	RuleNotFalse Rule = "not-false" // Not(False) -> True
	RuleAndTrue  Rule = "and-true"  // And(True, e) -> e
	RuleAndFalse Rule = "and-false" // And(False, _) -> False
	RuleOrTrue   Rule = "or-true"   // Or(True, _) -> True
	RuleOrFalse  Rule = "or-false"  // Or(False, e) -> e
	RuleIfTrue   Rule = "if-true"   // If(True, a, _) -> a
	RuleIfFalse  Rule = "if-false"  // If(False, _, b) -> b

	// Operand rules reduce the deciding operand to a literal first.
	RuleNotReduce Rule = "not-reduce" // Not(e) -> Not(eval(e))
	RuleAndReduce Rule = "and-reduce" // And(e1, e2) -> And(eval(e1), e2)
	RuleOrReduce  Rule = "or-reduce"  // Or(e1, e2) -> Or(eval(e1), e2)
	RuleIfReduce  Rule = "if-reduce"  // If(c, a, b) -> If(eval(c), a, b)
)

// Rules lists every rule in the order the reducer tries them.
var Rules = []Rule{
	RuleNotTrue, RuleNotFalse,
	RuleAndTrue, RuleAndFalse,
	RuleOrTrue, RuleOrFalse,
	RuleIfTrue, RuleIfFalse,
	RuleNotReduce, RuleAndReduce, RuleOrReduce, RuleIfReduce,
}

// Step is one rewrite recorded in a trace.
type Step struct {
	Rule  Rule     // Rule that fired
	From  ast.Expr // Term before the rewrite
	To    ast.Expr // Term after the rewrite
	Depth int      // Nesting level of the reduction, 0 for the root
}

// String renders the step as "rule: From => To".
func (s Step) String() string {
	return fmt.Sprintf("%s: %s => %s", s.Rule, describe(s.From), describe(s.To))
}

// describe renders e, tolerating nil operands of malformed trees.
func describe(e ast.Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}
