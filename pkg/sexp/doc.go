// Package sexp provides the generic symbolic-expression tree consumed by the
// boolean interpreter.
//
// A tree is built from three kinds of node:
//
//	Nil              the empty tree, terminating a list
//	Atom{Name}       an opaque leaf compared by name
//	Pair{Head,Tail}  a cons cell; chains ending in Nil are lists
//
// The atoms T, F, AND, OR, NOT and IF are predefined.
//
// # Building Trees
//
//	tree := sexp.List(sexp.AND, sexp.T, sexp.List(sexp.NOT, sexp.F))
//	fmt.Println(tree) // (AND T (NOT F))
//
// # Reading Text
//
// Read parses the usual parenthesized notation. Square brackets are accepted
// as parentheses and ';' starts a comment that runs to the end of the line:
//
//	tree, err := sexp.Read("(IF T (AND T F) F) ; pick the left branch")
//
// # Reading YAML
//
// ReadYAML and FromYAML map YAML sequences to lists and scalars to atoms:
//
//	tree, err := sexp.ReadYAML([]byte("[OR, F, [NOT, F]]"), "inline")
//
// # Normalization
//
// Unwrap collapses one-element sequences, so (T), ((T)) and T are the same
// tree after normalization.
package sexp
