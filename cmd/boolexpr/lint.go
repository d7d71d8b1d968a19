package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/cli"
	"mercator-hq/boolexpr/pkg/config"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate expression files",
	Long: `Check expression files for read and syntax errors without reducing them.

Every expression in a file is translated, and every problem is reported
with the expression it belongs to, its operand path and a suggested fix.
Directories are searched recursively for the extensions configured under
watch.extensions (default .sexp and .bx).

Examples:
  # Lint single file
  boolexpr lint --file exprs.sexp

  # Lint directory
  boolexpr lint --dir exprs/

  # JSON output for CI/CD
  boolexpr lint --dir exprs/ --format json`,
	RunE: lintFiles,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "expression file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of expression files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

// LintResult represents the validation result for a single file.
type LintResult struct {
	File        string      `json:"file"`
	Valid       bool        `json:"valid"`
	Expressions int         `json:"expressions"`
	Errors      []LintError `json:"errors,omitempty"`
}

// LintError represents a single problem in a file.
type LintError struct {
	Expression int    `json:"expression,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Path       string `json:"path,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Type       string `json:"type,omitempty"`
}

func lintFiles(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return cli.NewConfigError("args", "either --file or --dir must be specified")
	}
	format, err := cli.ParseOutputFormat(lintFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return cli.NewConfigError("format", err.Error())
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		found, err := expressionFiles(lintFlags.dir, config.GetConfig().Watch.Extensions)
		if err != nil {
			return cli.NewCommandError("lint", err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return cli.NewCommandError("lint", fmt.Errorf("no expression files found"))
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(cmd, file))
	}

	out := output(cmd)
	if format == cli.FormatJSON {
		if err := cli.NewFormatter(format).FormatTo(out, results); err != nil {
			return err
		}
	} else {
		printLintText(out, results)
	}

	for _, r := range results {
		if !r.Valid {
			return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
		}
	}
	return nil
}

func lintFile(cmd *cobra.Command, path string) LintResult {
	result := LintResult{File: path, Valid: true}

	inputs, err := readInputFile(cmd, path)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, toLintError(0, err))
		return result
	}

	p := newInterpreter().Parser()
	problems := bxErrors.NewErrorList()
	var indexes []int
	for _, in := range inputs {
		err := in.err
		if err == nil {
			result.Expressions++
			_, err = p.Parse(in.tree)
		}
		var bxErr *bxErrors.Error
		if errors.As(err, &bxErr) {
			problems.Add(bxErr)
			indexes = append(indexes, in.index)
		}
	}

	if problems.HasErrors() {
		result.Valid = false
		for i, e := range problems.Errors {
			result.Errors = append(result.Errors, toLintError(indexes[i], e))
		}
	}
	return result
}

func toLintError(index int, err error) LintError {
	var bxErr *bxErrors.Error
	if !errors.As(err, &bxErr) {
		return LintError{Expression: index, Message: err.Error()}
	}
	return LintError{
		Expression: index,
		Line:       bxErr.Position.Line,
		Column:     bxErr.Position.Column,
		Path:       bxErr.Path,
		Message:    bxErr.Message,
		Suggestion: bxErr.Suggestion,
		Type:       string(bxErr.Type),
	}
}

func printLintText(w io.Writer, results []LintResult) {
	totalErrors := 0

	for _, result := range results {
		fmt.Fprintf(w, "Validating %s...\n", result.File)

		if len(result.Errors) == 0 {
			fmt.Fprintf(w, "✓ %d expression(s) valid\n", result.Expressions)
		}

		for _, e := range result.Errors {
			fmt.Fprintf(w, "✗ Error: %s", e.Message)
			if e.Line > 0 {
				fmt.Fprintf(w, " (line %d", e.Line)
				if e.Column > 0 {
					fmt.Fprintf(w, ", col %d", e.Column)
				}
				fmt.Fprint(w, ")")
			} else if e.Expression > 0 {
				fmt.Fprintf(w, " (expression %d)", e.Expression)
			}
			if e.Type != "" {
				fmt.Fprintf(w, " [%s]", e.Type)
			}
			fmt.Fprintln(w)
			if e.Path != "" {
				fmt.Fprintf(w, "    at: %s\n", e.Path)
			}
			if e.Suggestion != "" {
				fmt.Fprintf(w, "    suggestion: %s\n", e.Suggestion)
			}
			totalErrors++
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d file(s), %d error(s)\n", len(results), totalErrors)
}
