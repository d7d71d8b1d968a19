package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/boolexpr/pkg/cli"
	"mercator-hq/boolexpr/pkg/suite"
)

var testFlags struct {
	suites []string
	format string
}

var testCmd = &cobra.Command{
	Use:   "test [suite...]",
	Short: "Run golden expression suites",
	Long: `Run golden suites of expressions with their expected outcome.

Suite Format (YAML):
  name: basics
  cases:
    - name: nested
      expr: "(AND (OR F T) (NOT F))"
      expect: "True"
    - name: yaml-tree
      tree: [IF, T, F, T]
      expect: "False"
    - name: bad-arity
      expr: "(AND T)"
      error: syntax       # read, syntax or unreducible

Examples:
  # Run a suite
  boolexpr test --suite cases.yaml

  # Run several suites and write JUnit XML for CI
  boolexpr test cases.yaml more.yaml --format junit`,
	RunE: runSuites,
}

func init() {
	rootCmd.AddCommand(testCmd)

	testCmd.Flags().StringSliceVarP(&testFlags.suites, "suite", "s", nil, "suite file (repeatable)")
	testCmd.Flags().StringVar(&testFlags.format, "format", "text", "output format: text, json, junit")
}

func runSuites(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(testFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatJUnit)
	if err != nil {
		return cli.NewConfigError("format", err.Error())
	}

	paths := append(append([]string(nil), testFlags.suites...), args...)
	if len(paths) == 0 {
		return cli.NewConfigError("suite", "at least one suite file is required")
	}

	// Load every suite first so that a broken file fails before any case runs.
	suites := make([]*suite.Suite, 0, len(paths))
	for _, path := range paths {
		s, err := suite.Load(path)
		if err != nil {
			return cli.NewCommandError("test", fmt.Errorf("failed to load suite: %w", err))
		}
		suites = append(suites, s)
	}

	interp := newInterpreter()
	ctx := commandContext(cmd)
	reports := make([]*suite.Report, 0, len(suites))
	passed, failed := 0, 0
	for _, s := range suites {
		report := suite.Run(ctx, interp, s)
		passed += report.Passed
		failed += report.Failed
		reports = append(reports, report)
	}

	out := output(cmd)
	switch format {
	case cli.FormatJSON:
		if err := cli.NewFormatter(format).FormatTo(out, reports); err != nil {
			return err
		}
	case cli.FormatJUnit:
		if err := suite.WriteJUnit(out, reports...); err != nil {
			return err
		}
	default:
		printSuiteText(out, reports, passed, failed)
	}

	if failed > 0 {
		return cli.NewCommandError("test", fmt.Errorf("%d of %d case(s) failed", failed, passed+failed))
	}
	return nil
}

func printSuiteText(w io.Writer, reports []*suite.Report, passed, failed int) {
	var total time.Duration

	for _, report := range reports {
		fmt.Fprintf(w, "Running suite %s (%s)...\n\n", report.Suite, report.Source)

		for _, r := range report.Results {
			if r.Passed {
				fmt.Fprintf(w, "✓ %s (%.1fms)\n", r.Name, r.Duration.Seconds()*1000)
				continue
			}
			fmt.Fprintf(w, "✗ %s\n", r.Name)
			fmt.Fprintf(w, "  Expected: %s\n", r.Expected)
			fmt.Fprintf(w, "  Actual:   %s\n", r.Actual)
			if r.Message != "" {
				fmt.Fprintf(w, "  Error: %s\n", r.Message)
			}
		}
		fmt.Fprintln(w)
		total += report.Duration
	}

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  %d passed, %d failed (%.1fms)\n", passed, failed, total.Seconds()*1000)
}
