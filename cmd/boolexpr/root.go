package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mercator-hq/boolexpr/pkg/boolexpr"
	"mercator-hq/boolexpr/pkg/cli"
	"mercator-hq/boolexpr/pkg/config"
	"mercator-hq/boolexpr/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile  string
	verbose  bool
	logLevel string

	// appLogger is set by initApp; commands run without it log nothing.
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "boolexpr",
	Short: "Boolexpr - boolean s-expression interpreter",
	Long: `Boolexpr translates symbolic expressions into a boolean AST and reduces
them to True or False.

The language has six forms:
  T, F               literals
  (NOT e)            negation
  (AND e1 e2)        conjunction, short-circuits on F
  (OR e1 e2)         disjunction, short-circuits on T
  (IF c e1 e2)       conditional`,
	Version:           Version,
	PersistentPreRunE: initApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultConfigPath, "config file path (optional unless set)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// initApp loads configuration and builds the logger before any subcommand.
// A missing default config file is not an error; an explicit --config is.
func initApp(cmd *cobra.Command, _ []string) error {
	required := false
	if cmd != nil {
		if f := cmd.Flag("config"); f != nil {
			required = f.Changed
		}
	}

	cfg, err := config.LoadOrDefault(cfgFile, required)
	if err != nil {
		return cli.NewConfigError("config", err.Error())
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    errOutput(cmd),
	})
	if err != nil {
		return cli.NewConfigError("log-level", err.Error())
	}

	config.SetConfig(cfg)
	appLogger = logger
	logger.Debug("configuration loaded", "path", cfgFile, "explicit", required)
	return nil
}

func currentLogger() *slog.Logger {
	if appLogger == nil {
		return logging.Discard()
	}
	return appLogger
}

// newInterpreter builds an interpreter from the active configuration.
func newInterpreter(opts ...boolexpr.Option) *boolexpr.Interpreter {
	base := []boolexpr.Option{boolexpr.WithLogger(currentLogger())}
	return boolexpr.NewInterpreterFromConfig(config.GetConfig(), append(base, opts...)...)
}

func output(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}

func errOutput(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stderr
	}
	return cmd.ErrOrStderr()
}
