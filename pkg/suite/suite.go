package suite

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/sexp"
)

// Suite is a named list of golden cases loaded from one file.
type Suite struct {
	Name   string
	Source string // File the suite was loaded from
	Cases  []Case
}

// Case is one golden expression with its expected outcome.
// Exactly one of Expr and Tree is set, and exactly one of Expect and Error.
type Case struct {
	Name     string
	Expr     string             // S-expression text
	Tree     sexp.Value         // Tree given directly as a YAML sequence
	Expect   ast.Expr           // Expected literal
	Error    bxErrors.ErrorType // Expected error type
	Position sexp.Position      // Location of the case in the suite file
}

// ExpectsError reports whether the case expects a failure.
func (c *Case) ExpectsError() bool {
	return c.Error != ""
}

// Expected renders the expected outcome, "True", "False" or "error: <type>".
func (c *Case) Expected() string {
	if c.ExpectsError() {
		return "error: " + string(c.Error)
	}
	return c.Expect.String()
}

type rawSuite struct {
	Name  string      `yaml:"name"`
	Cases []yaml.Node `yaml:"cases"`
}

type rawCase struct {
	Name   string    `yaml:"name"`
	Expr   *string   `yaml:"expr"`
	Tree   yaml.Node `yaml:"tree"`
	Expect string    `yaml:"expect"`
	Error  string    `yaml:"error"`
}

// expectable lists the error types a case may expect.
var expectable = []bxErrors.ErrorType{
	bxErrors.ErrorTypeRead,
	bxErrors.ErrorTypeSyntax,
	bxErrors.ErrorTypeUnreducible,
}

// Load reads and validates a suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &bxErrors.Error{
			Type:    bxErrors.ErrorTypeIO,
			Message: fmt.Sprintf("failed to read suite file: %v", err),
			Cause:   err,
		}
	}
	return LoadBytes(data, path)
}

// LoadBytes decodes and validates a suite. Every invalid case is reported;
// the returned error is a *bxErrors.ErrorList when validation fails.
func LoadBytes(data []byte, source string) (*Suite, error) {
	var raw rawSuite
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &bxErrors.Error{
			Type:     bxErrors.ErrorTypeRead,
			Message:  fmt.Sprintf("YAML parsing failed: %v", err),
			Position: sexp.Position{Source: source, Line: 1, Column: 1},
			Cause:    err,
		}
	}

	problems := bxErrors.NewErrorList()
	s := &Suite{Name: raw.Name, Source: source}
	if s.Name == "" {
		s.Name = source
	}
	if len(raw.Cases) == 0 {
		problems.AddError(bxErrors.ErrorTypeRead, "suite has no cases", sexp.Position{Source: source, Line: 1, Column: 1})
	}

	seen := make(map[string]sexp.Position)
	for i := range raw.Cases {
		node := &raw.Cases[i]
		pos := sexp.Position{Source: source, Line: node.Line, Column: node.Column}

		c, ok := decodeCase(node, pos, i, problems)
		if !ok {
			continue
		}
		if first, dup := seen[c.Name]; dup {
			problems.AddError(bxErrors.ErrorTypeRead,
				fmt.Sprintf("duplicate case name %q (first defined at %s)", c.Name, first), pos)
			continue
		}
		seen[c.Name] = pos
		s.Cases = append(s.Cases, c)
	}

	if err := problems.ToError(); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeCase(node *yaml.Node, pos sexp.Position, index int, problems *bxErrors.ErrorList) (Case, bool) {
	var rc rawCase
	if err := node.Decode(&rc); err != nil {
		problems.AddError(bxErrors.ErrorTypeRead, fmt.Sprintf("case %d: %v", index+1, err), pos)
		return Case{}, false
	}

	c := Case{Name: rc.Name, Position: pos}
	if c.Name == "" {
		c.Name = fmt.Sprintf("case-%d", index+1)
		problems.AddError(bxErrors.ErrorTypeRead, fmt.Sprintf("case %d: name is required", index+1), pos)
	}

	valid := true
	hasTree := rc.Tree.Kind != 0
	switch {
	case rc.Expr != nil && hasTree:
		problems.AddError(bxErrors.ErrorTypeRead, fmt.Sprintf("case %q: expr and tree are mutually exclusive", c.Name), pos)
		valid = false
	case rc.Expr != nil:
		c.Expr = *rc.Expr
	case hasTree:
		tree, err := sexp.FromYAMLSource(&rc.Tree, pos.Source)
		if err != nil {
			problems.Add(bxErrors.FromReadError(err))
			valid = false
		}
		c.Tree = tree
	default:
		problems.AddError(bxErrors.ErrorTypeRead, fmt.Sprintf("case %q: one of expr or tree is required", c.Name), pos)
		valid = false
	}

	switch {
	case rc.Expect != "" && rc.Error != "":
		problems.AddError(bxErrors.ErrorTypeRead, fmt.Sprintf("case %q: expect and error are mutually exclusive", c.Name), pos)
		valid = false
	case rc.Expect != "":
		lit, ok := parseLiteral(rc.Expect)
		if !ok {
			problems.AddError(bxErrors.ErrorTypeRead,
				fmt.Sprintf("case %q: expect must be True or False, got %q", c.Name, rc.Expect), pos)
			valid = false
		}
		c.Expect = lit
	case rc.Error != "":
		errType, ok := parseErrorType(rc.Error)
		if !ok {
			problems.AddError(bxErrors.ErrorTypeRead,
				fmt.Sprintf("case %q: unknown error type %q (supported: %v)", c.Name, rc.Error, expectable), pos)
			valid = false
		}
		c.Error = errType
	default:
		problems.AddError(bxErrors.ErrorTypeRead, fmt.Sprintf("case %q: one of expect or error is required", c.Name), pos)
		valid = false
	}

	return c, valid && rc.Name != ""
}

// parseLiteral accepts the AST renderings and the reader's atoms.
func parseLiteral(s string) (ast.Expr, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t":
		return ast.True{}, true
	case "false", "f":
		return ast.False{}, true
	default:
		return nil, false
	}
}

func parseErrorType(s string) (bxErrors.ErrorType, bool) {
	for _, t := range expectable {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}
