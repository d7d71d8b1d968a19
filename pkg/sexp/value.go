package sexp

import "strings"

// Value is a node of a symbolic-expression tree.
// It is implemented by exactly three kinds: Nil, Atom and Pair.
type Value interface {
	// String returns the canonical text form of the tree.
	String() string

	value()
}

// nilValue is the empty tree.
type nilValue struct{}

// Nil is the empty tree. It terminates every proper list.
var Nil Value = nilValue{}

func (nilValue) value() {}

// String returns "()".
func (nilValue) String() string { return "()" }

// Atom is an opaque leaf. Atoms are compared by name.
type Atom struct {
	Name string
}

func (Atom) value() {}

// String returns the atom name.
func (a Atom) String() string { return a.Name }

// Pair is a binary node. Chains of pairs ending in Nil form lists.
type Pair struct {
	Head Value
	Tail Value
}

func (Pair) value() {}

// String renders proper lists as (a b c) and improper tails as (a . b).
func (p Pair) String() string {
	var sb strings.Builder
	writeValue(&sb, p)
	return sb.String()
}

// writeValue renders into a single builder so deep trees render in linear
// time. It tolerates nil interface values left in hand-built trees.
func writeValue(sb *strings.Builder, v Value) {
	pair, ok := v.(Pair)
	if !ok {
		if v == nil {
			sb.WriteString("<nil>")
			return
		}
		sb.WriteString(v.String())
		return
	}

	sb.WriteByte('(')
	var cur Value = pair
	first := true
	for {
		node, ok := cur.(Pair)
		if !ok {
			break
		}
		if !first {
			sb.WriteByte(' ')
		}
		writeValue(sb, node.Head)
		first = false
		cur = node.Tail
	}
	if cur != Nil {
		sb.WriteString(" . ")
		writeValue(sb, cur)
	}
	sb.WriteByte(')')
}

// Predefined atoms of the boolean language.
var (
	T   = Atom{Name: "T"}
	F   = Atom{Name: "F"}
	AND = Atom{Name: "AND"}
	OR  = Atom{Name: "OR"}
	NOT = Atom{Name: "NOT"}
	IF  = Atom{Name: "IF"}
)

// Symbol returns the atom with the given name.
func Symbol(name string) Atom {
	return Atom{Name: name}
}

// Cons prepends head to tail.
func Cons(head, tail Value) Value {
	return Pair{Head: head, Tail: tail}
}

// List builds a proper list from the given values.
// List() is Nil.
func List(values ...Value) Value {
	var out Value = Nil
	for i := len(values) - 1; i >= 0; i-- {
		out = Pair{Head: values[i], Tail: out}
	}
	return out
}

// Slice returns the elements of a proper list.
// It reports false when v is not a list or its final tail is not Nil.
// Slice(Nil) returns an empty slice and true.
func Slice(v Value) ([]Value, bool) {
	var out []Value
	for {
		switch node := v.(type) {
		case nilValue:
			return out, true
		case Pair:
			out = append(out, node.Head)
			v = node.Tail
		default:
			return nil, false
		}
	}
}

// Unwrap canonicalizes list-shaped trees by replacing every one-element
// sequence (x) with x, repeatedly, so ((T)) and (T) both become T.
func Unwrap(v Value) Value {
	for {
		pair, ok := v.(Pair)
		if !ok || pair.Tail != Nil {
			return v
		}
		v = pair.Head
	}
}

// IsAtom reports whether v is an atom equal to want.
func IsAtom(v Value, want Atom) bool {
	a, ok := v.(Atom)
	return ok && a == want
}

// Equal reports whether two trees are structurally equal.
func Equal(a, b Value) bool {
	for {
		switch x := a.(type) {
		case nilValue:
			return b == Nil
		case Atom:
			y, ok := b.(Atom)
			return ok && x == y
		case Pair:
			y, ok := b.(Pair)
			if !ok || !Equal(x.Head, y.Head) {
				return false
			}
			a, b = x.Tail, y.Tail
		default:
			return a == nil && b == nil
		}
	}
}
