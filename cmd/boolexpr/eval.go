package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mercator-hq/boolexpr/pkg/boolexpr"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/cli"
	"mercator-hq/boolexpr/pkg/config"
	"mercator-hq/boolexpr/pkg/telemetry/logging"
)

var evalFlags struct {
	file   string
	trace  bool
	format string
}

var evalCmd = &cobra.Command{
	Use:   "eval [expr...]",
	Short: "Reduce expressions to True or False",
	Long: `Translate and reduce boolean s-expressions.

Each argument may hold one or more expressions. With --file, every
expression in the file is reduced; files ending in .yaml or .yml hold a
single tree written as nested sequences, and "-" reads standard input.

Examples:
  # Reduce an expression
  boolexpr eval "(AND (OR F T) (NOT F))"

  # Show the rewrites that fired
  boolexpr eval --trace "(IF (NOT T) F T)"

  # Reduce every expression in a file, as JSON
  boolexpr eval --file exprs.sexp --format json`,
	RunE: evalExprs,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVarP(&evalFlags.file, "file", "f", "", "expression file (\"-\" for stdin)")
	evalCmd.Flags().BoolVar(&evalFlags.trace, "trace", false, "print every rewrite")
	evalCmd.Flags().StringVar(&evalFlags.format, "format", "text", "output format: text, json")
}

// EvalResult is the outcome of reducing one expression.
type EvalResult struct {
	Source    string   `json:"source"`
	Input     string   `json:"input,omitempty"`
	Value     string   `json:"value,omitempty"`
	Error     string   `json:"error,omitempty"`
	ErrorType string   `json:"error_type,omitempty"`
	Trace     []string `json:"trace,omitempty"`
	RunID     string   `json:"run_id,omitempty"`
	Duration  int64    `json:"duration_ns,omitempty"`
}

func evalExprs(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(evalFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return cli.NewConfigError("format", err.Error())
	}
	if len(args) == 0 && evalFlags.file == "" {
		return cli.NewConfigError("args", "an expression argument or --file is required")
	}

	inputs, err := collectInputs(cmd, args, evalFlags.file)
	if err != nil {
		return cli.NewCommandError("eval", err)
	}

	trace := evalFlags.trace || config.GetConfig().Reducer.Trace
	interp := newInterpreter(boolexpr.WithTrace(trace))

	ctx := commandContext(cmd)
	results := make([]EvalResult, 0, len(inputs))
	failed := 0
	for _, in := range inputs {
		result := evalInput(ctx, interp, in)
		if result.Error != "" {
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
		printEvalText(out, results)
	}

	if failed > 0 {
		return cli.NewCommandError("eval", fmt.Errorf("%d of %d expression(s) failed", failed, len(results)))
	}
	return nil
}

func evalInput(ctx context.Context, interp *boolexpr.Interpreter, in input) EvalResult {
	result := EvalResult{Source: in.label()}
	if in.err != nil {
		result.Error = in.err.Error()
		result.ErrorType = string(bxErrors.TypeOf(in.err))
		return result
	}
	result.Input = in.tree.String()

	ctx = logging.WithSource(ctx, in.label())
	res, err := interp.Run(ctx, in.tree)
	if err != nil {
		result.Error = err.Error()
		result.ErrorType = string(bxErrors.TypeOf(err))
		return result
	}

	result.Value = res.Literal().String()
	result.RunID = res.RunID
	result.Duration = res.Duration.Nanoseconds()
	for _, step := range res.Trace {
		result.Trace = append(result.Trace, step.String())
	}
	return result
}

func printEvalText(w io.Writer, results []EvalResult) {
	for _, r := range results {
		for _, step := range r.Trace {
			fmt.Fprintf(w, "  %s\n", step)
		}

		if r.Error != "" {
			fmt.Fprintf(w, "✗ %s: %s\n", r.Source, r.Error)
			continue
		}
		if len(results) == 1 {
			fmt.Fprintln(w, r.Value)
		} else {
			fmt.Fprintf(w, "%s => %s\n", r.Input, r.Value)
		}
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
