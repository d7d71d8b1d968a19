package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mercator-hq/boolexpr/pkg/boolexpr/ast"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/cli"
)

var parseFlags struct {
	file   string
	format string
}

var parseCmd = &cobra.Command{
	Use:   "parse [expr...]",
	Short: "Translate expressions and print the AST",
	Long: `Translate boolean s-expressions into the AST without reducing them.

For every expression the AST rendering, its depth, its size and a count of
each node kind are printed.

Examples:
  boolexpr parse "(IF T (NOT F) F)"
  boolexpr parse --file tree.yaml --format json`,
	RunE: parseExprs,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.file, "file", "f", "", "expression file (\"-\" for stdin)")
	parseCmd.Flags().StringVar(&parseFlags.format, "format", "text", "output format: text, json")
}

// ParseResult describes one translated expression.
type ParseResult struct {
	Source    string           `json:"source"`
	Input     string           `json:"input,omitempty"`
	AST       string           `json:"ast,omitempty"`
	Depth     int              `json:"depth,omitempty"`
	Size      int              `json:"size,omitempty"`
	Kinds     map[ast.Kind]int `json:"kinds,omitempty"`
	Error     string           `json:"error,omitempty"`
	ErrorType string           `json:"error_type,omitempty"`
}

func parseExprs(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(parseFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return cli.NewConfigError("format", err.Error())
	}
	if len(args) == 0 && parseFlags.file == "" {
		return cli.NewConfigError("args", "an expression argument or --file is required")
	}

	inputs, err := collectInputs(cmd, args, parseFlags.file)
	if err != nil {
		return cli.NewCommandError("parse", err)
	}

	p := newInterpreter().Parser()
	results := make([]ParseResult, 0, len(inputs))
	failed := 0
	for _, in := range inputs {
		result := ParseResult{Source: in.label()}
		err := in.err
		if err == nil {
			result.Input = in.tree.String()
			var expr ast.Expr
			expr, err = p.Parse(in.tree)
			if err == nil {
				result.AST = expr.String()
				result.Depth = ast.Depth(expr)
				result.Size = ast.Size(expr)
				result.Kinds = ast.CountKinds(expr)
			}
		}
		if err != nil {
			result.Error = err.Error()
			result.ErrorType = string(bxErrors.TypeOf(err))
			failed++
		}
		results = append(results, result)
	}

	out := output(cmd)
	if format == cli.FormatJSON {
		if err := cli.NewFormatter(format).FormatTo(out, results); err != nil {
			return err
		}
	} else {
		printParseText(out, results)
	}

	if failed > 0 {
		return cli.NewCommandError("parse", fmt.Errorf("%d of %d expression(s) failed", failed, len(results)))
	}
	return nil
}

func printParseText(w io.Writer, results []ParseResult) {
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "✗ %s: %s\n", r.Source, r.Error)
			continue
		}
		fmt.Fprintln(w, r.AST)
		fmt.Fprintf(w, "  depth=%d size=%d kinds=%s\n", r.Depth, r.Size, formatKinds(r.Kinds))
	}
}

// formatKinds renders counts in ast.Kinds order, e.g. "True:2 And:1".
func formatKinds(kinds map[ast.Kind]int) string {
	parts := make([]string, 0, len(kinds))
	for _, k := range ast.Kinds {
		if n := kinds[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", k, n))
		}
	}
	return strings.Join(parts, " ")
}
