// Package ast defines the typed boolean-expression tree.
//
// The language has exactly six forms:
//
//	True             literal true
//	False            literal false
//	Not{E}           negation
//	And{E1, E2}      conjunction
//	Or{E1, E2}       disjunction
//	If{C, E1, E2}    conditional
//
// The Expr interface is sealed, so no other package can add a variant.
// Nodes are plain comparable values: two trees built separately compare
// equal with == when they have the same shape.
//
// # Rendering
//
// String returns the canonical text form used for display and golden
// output. Constructor names are followed by parenthesized, comma-separated
// children with no spaces:
//
//	ast.And{E1: ast.True{}, E2: ast.False{}}.String() // "And(True,False)"
//	ast.True{}.String()                               // "True"
//
// # Traversal
//
// Walk visits nodes in pre-order:
//
//	err := ast.Walk(expr, ast.VisitorFunc(func(e ast.Expr, depth int) error {
//	    fmt.Println(strings.Repeat("  ", depth-1), e.Kind())
//	    return nil
//	}))
//
// Depth, Size and CountKinds are built on Walk.
package ast
