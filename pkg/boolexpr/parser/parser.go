package parser

import (
	"context"
	"fmt"
	"log/slog"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/sexp"
)

// Parser translates symbolic-expression trees into boolean ASTs.
// A Parser holds only configuration and is safe for concurrent use.
type Parser struct {
	maxDepth int // Maximum nesting depth, 0 for unlimited
	logger   *slog.Logger
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxDepth: 0,
		logger:   slog.Default(),
	}
}

// WithMaxDepth sets the maximum nesting depth. Trees nested deeper are
// rejected as invalid syntax. Zero or negative means unlimited.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// WithLogger sets the logger used for debug output.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	p.logger = logger
	return p
}

// MaxDepth returns the configured nesting limit.
func (p *Parser) MaxDepth() int {
	return p.maxDepth
}

// Parse translates tree into an AST.
// It returns a *bxErrors.Error of type ErrorTypeSyntax if the tree does not
// match one of the six forms; no partial AST is ever returned.
func (p *Parser) Parse(tree sexp.Value) (ast.Expr, error) {
	b := &builder{maxDepth: p.maxDepth}
	expr, err := b.build(tree, 1, "")

	// Rendering a large tree is not free; skip it unless debug is on.
	if !p.logger.Enabled(context.Background(), slog.LevelDebug) {
		return expr, err
	}
	if err != nil {
		p.logger.Debug("tree rejected",
			"tree", render(tree),
			"error", err,
		)
		return nil, err
	}

	p.logger.Debug("tree translated",
		"tree", tree.String(),
		"expr", expr.String(),
	)
	return expr, nil
}

// Parse translates tree with a default parser.
func Parse(tree sexp.Value) (ast.Expr, error) {
	return NewParser().Parse(tree)
}

// ParseString reads src as s-expression text and translates it.
// Reader failures are reported as ErrorTypeRead.
func ParseString(src string) (ast.Expr, error) {
	tree, err := sexp.Read(src)
	if err != nil {
		return nil, bxErrors.FromReadError(err)
	}
	return Parse(tree)
}

// MustParseString is like ParseString but panics on error.
// It is intended for tests and package-level fixtures.
func MustParseString(src string) ast.Expr {
	expr, err := ParseString(src)
	if err != nil {
		panic(fmt.Sprintf("parser: ParseString(%q): %v", src, err))
	}
	return expr
}

func render(tree sexp.Value) string {
	if tree == nil {
		return "<nil>"
	}
	return tree.String()
}
