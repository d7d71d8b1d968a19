package ast

import "strings"

// Kind identifies one of the six expression variants.
type Kind string

const (
	KindTrue  Kind = "True"
	KindFalse Kind = "False"
	KindNot   Kind = "Not"
	KindAnd   Kind = "And"
	KindOr    Kind = "Or"
	KindIf    Kind = "If"
)

// Kinds lists every variant in declaration order.
var Kinds = []Kind{KindTrue, KindFalse, KindNot, KindAnd, KindOr, KindIf}

// Expr is a boolean expression node.
// The set of implementations is closed: True, False, Not, And, Or and If.
// Every variant is a comparable value, so == is structural equality.
type Expr interface {
	// Kind returns the variant of the node.
	Kind() Kind

	// String returns the canonical rendering, e.g. And(True,False).
	String() string

	expr()
}

// True is the literal true.
type True struct{}

// False is the literal false.
type False struct{}

// Not is logical negation.
type Not struct {
	E Expr
}

// And is logical conjunction.
type And struct {
	E1, E2 Expr
}

// Or is logical disjunction.
type Or struct {
	E1, E2 Expr
}

// If selects E1 when C is true and E2 otherwise.
type If struct {
	C, E1, E2 Expr
}

func (True) expr()  {}
func (False) expr() {}
func (Not) expr()   {}
func (And) expr()   {}
func (Or) expr()    {}
func (If) expr()    {}

func (True) Kind() Kind  { return KindTrue }
func (False) Kind() Kind { return KindFalse }
func (Not) Kind() Kind   { return KindNot }
func (And) Kind() Kind   { return KindAnd }
func (Or) Kind() Kind    { return KindOr }
func (If) Kind() Kind    { return KindIf }

func (True) String() string  { return string(KindTrue) }
func (False) String() string { return string(KindFalse) }
func (n Not) String() string { return render(n) }
func (n And) String() string { return render(n) }
func (n Or) String() string  { return render(n) }
func (n If) String() string  { return render(n) }

// render writes name(child,child,...) with no spaces into a single builder
// so deep trees render in linear time.
func render(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	sb.WriteString(string(e.Kind()))
	if IsLiteral(e) {
		return
	}
	sb.WriteByte('(')
	for i, child := range Children(e) {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeExpr(sb, child)
	}
	sb.WriteByte(')')
}

// KindOf returns the variant of e, or "" for nil.
func KindOf(e Expr) Kind {
	if e == nil {
		return ""
	}
	return e.Kind()
}

// Children returns the operands of e in declaration order.
// Literals and nil have no children.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case Not:
		return []Expr{n.E}
	case And:
		return []Expr{n.E1, n.E2}
	case Or:
		return []Expr{n.E1, n.E2}
	case If:
		return []Expr{n.C, n.E1, n.E2}
	default:
		return nil
	}
}

// Equal reports whether a and b are structurally equal.
func Equal(a, b Expr) bool {
	return a == b
}

// IsLiteral returns true if e is True or False.
func IsLiteral(e Expr) bool {
	switch e.(type) {
	case True, False:
		return true
	default:
		return false
	}
}

// Bool returns the literal for b.
func Bool(b bool) Expr {
	if b {
		return True{}
	}
	return False{}
}

// ToBool converts a literal to its Go value.
// It reports false if e is not a literal.
func ToBool(e Expr) (value bool, ok bool) {
	switch e.(type) {
	case True:
		return true, true
	case False:
		return false, true
	default:
		return false, false
	}
}
