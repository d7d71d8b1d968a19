package ast

// Visitor provides an interface for traversing an expression tree.
// Implement this interface to inspect nodes (statistics, linting, etc.).
// depth is 1 for the root.
type Visitor interface {
	Visit(e Expr, depth int) error
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(e Expr, depth int) error

// Visit calls f(e, depth).
func (f VisitorFunc) Visit(e Expr, depth int) error {
	return f(e, depth)
}

// Walk traverses the tree rooted at e in pre-order and calls the visitor
// for each node, including nil children. It returns the first error
// encountered, or nil if traversal completes.
func Walk(e Expr, visitor Visitor) error {
	return walk(e, 1, visitor)
}

func walk(e Expr, depth int, visitor Visitor) error {
	if err := visitor.Visit(e, depth); err != nil {
		return err
	}
	for _, child := range Children(e) {
		if err := walk(child, depth+1, visitor); err != nil {
			return err
		}
	}
	return nil
}

// Depth returns the height of the tree; a literal has depth 1.
func Depth(e Expr) int {
	maxDepth := 0
	_ = Walk(e, VisitorFunc(func(_ Expr, depth int) error {
		if depth > maxDepth {
			maxDepth = depth
		}
		return nil
	}))
	return maxDepth
}

// Size returns the number of nodes in the tree.
func Size(e Expr) int {
	size := 0
	_ = Walk(e, VisitorFunc(func(Expr, int) error {
		size++
		return nil
	}))
	return size
}

// CountKinds returns how many nodes of each kind the tree contains.
func CountKinds(e Expr) map[Kind]int {
	counts := make(map[Kind]int)
	_ = Walk(e, VisitorFunc(func(n Expr, _ int) error {
		if n != nil {
			counts[n.Kind()]++
		}
		return nil
	}))
	return counts
}
