package parser

import (
	"fmt"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/sexp"
)

// arities maps each operator atom to its operand count.
var arities = map[sexp.Atom]int{
	sexp.NOT: 1,
	sexp.AND: 2,
	sexp.OR:  2,
	sexp.IF:  3,
}

// builder constructs AST nodes from a tree by recursive descent.
type builder struct {
	maxDepth int
}

// build translates one tree. depth is 1 for the root; path names the
// operand position for error reporting.
func (b *builder) build(tree sexp.Value, depth int, path string) (ast.Expr, error) {
	if b.maxDepth > 0 && depth > b.maxDepth {
		return nil, bxErrors.NewSyntaxError(
			fmt.Sprintf("nesting depth exceeds maximum of %d", b.maxDepth), tree, path)
	}

	// The grammar allows both T and (T); normalize once, here, so no arm
	// below needs to handle the wrapped encoding.
	if tree != nil {
		tree = sexp.Unwrap(tree)
	}

	switch node := tree.(type) {
	case sexp.Atom:
		return b.buildAtom(node, path)
	case sexp.Pair:
		return b.buildForm(node, depth, path)
	case nil:
		return nil, bxErrors.NewSyntaxError("missing expression", nil, path)
	default:
		return nil, bxErrors.NewSyntaxError("empty expression", node, path)
	}
}

// buildAtom translates a bare atom, which must be a literal.
func (b *builder) buildAtom(atom sexp.Atom, path string) (ast.Expr, error) {
	switch atom {
	case sexp.T:
		return ast.True{}, nil
	case sexp.F:
		return ast.False{}, nil
	}

	if want, ok := arities[atom]; ok {
		err := bxErrors.NewSyntaxError(
			fmt.Sprintf("%s expects %d operand(s), got 0", atom.Name, want), atom, path)
		err.Suggestion = bxErrors.SuggestArity(atom.Name, want)
		return nil, err
	}

	err := bxErrors.NewSyntaxError(fmt.Sprintf("unknown atom %q", atom.Name), atom, path)
	err.Suggestion = bxErrors.SuggestLiteral(atom.Name)
	return nil, err
}

// buildForm translates a list whose head must be an operator atom followed
// by exactly the operator's operand count.
func (b *builder) buildForm(form sexp.Pair, depth int, path string) (ast.Expr, error) {
	items, ok := sexp.Slice(form)
	if !ok {
		return nil, bxErrors.NewSyntaxError("improper list", form, path)
	}

	head, ok := items[0].(sexp.Atom)
	if !ok {
		return nil, bxErrors.NewSyntaxError(
			fmt.Sprintf("expected an operator at the head of the list, got %s", render(items[0])), form, path)
	}

	want, ok := arities[head]
	if !ok {
		err := bxErrors.NewSyntaxError(fmt.Sprintf("unknown operator %q", head.Name), form, path)
		if head == sexp.T || head == sexp.F {
			err.Message = fmt.Sprintf("literal %s cannot be applied to operands", head.Name)
		} else {
			err.Suggestion = bxErrors.SuggestOperator(head.Name)
		}
		return nil, err
	}

	operands := items[1:]
	if len(operands) != want {
		err := bxErrors.NewSyntaxError(
			fmt.Sprintf("%s expects %d operand(s), got %d", head.Name, want, len(operands)), form, path)
		err.Suggestion = bxErrors.SuggestArity(head.Name, want)
		return nil, err
	}

	children := make([]ast.Expr, want)
	for i, operand := range operands {
		child, err := b.build(operand, depth+1, joinPath(path, head.Name, i+1))
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	switch head {
	case sexp.NOT:
		return ast.Not{E: children[0]}, nil
	case sexp.AND:
		return ast.And{E1: children[0], E2: children[1]}, nil
	case sexp.OR:
		return ast.Or{E1: children[0], E2: children[1]}, nil
	case sexp.IF:
		return ast.If{C: children[0], E1: children[1], E2: children[2]}, nil
	default:
		// arities and this switch must list the same operators.
		panic(fmt.Sprintf("parser: operator %s has an arity but no constructor", head.Name))
	}
}

// joinPath appends an operand segment such as "AND[2]" to path.
func joinPath(path, operator string, index int) string {
	segment := fmt.Sprintf("%s[%d]", operator, index)
	if path == "" {
		return segment
	}
	return path + " > " + segment
}
