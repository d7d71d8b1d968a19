package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mercator-hq/boolexpr/pkg/boolexpr"
	"mercator-hq/boolexpr/pkg/cli"
	"mercator-hq/boolexpr/pkg/config"
	"mercator-hq/boolexpr/pkg/telemetry/metrics"
	"mercator-hq/boolexpr/pkg/watch"
)

const shutdownTimeout = 5 * time.Second

var watchFlags struct {
	path        string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-evaluate expression files when they change",
	Long: `Evaluate an expression file, or every expression file in a directory,
and evaluate it again each time it changes. Rapid changes are debounced
(watch.debounce, default 100ms).

With --metrics-addr, or telemetry.metrics.enabled in the configuration,
Prometheus metrics are served while watching.

Examples:
  boolexpr watch --file exprs.sexp
  boolexpr watch --file exprs/ --metrics-addr 127.0.0.1:9464`,
	RunE: watchFiles,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.path, "file", "f", "", "expression file or directory to watch")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
}

func watchFiles(cmd *cobra.Command, args []string) error {
	if watchFlags.path == "" || watchFlags.path == "-" {
		return cli.NewConfigError("file", "--file must name a file or directory")
	}

	cfg := config.GetConfig()
	logger := currentLogger()
	out := output(cmd)

	ctx, stop := cli.SetupSignalHandler(commandContext(cmd))
	defer stop()

	var opts []boolexpr.Option
	metricsCfg := cfg.Telemetry.Metrics
	if watchFlags.metricsAddr != "" {
		metricsCfg.Enabled = true
		metricsCfg.ListenAddress = watchFlags.metricsAddr
	}
	if metricsCfg.Enabled {
		collector := metrics.NewCollector(&metricsCfg, nil)
		opts = append(opts, boolexpr.WithRecorder(collector))

		srv, err := serveMetrics(collector, metricsCfg, logger)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown failed", "error", err)
			}
		}()
	}

	interp := newInterpreter(opts...)

	files := []string{watchFlags.path}
	if info, err := os.Stat(watchFlags.path); err == nil && info.IsDir() {
		files, err = expressionFiles(watchFlags.path, cfg.Watch.Extensions)
		if err != nil {
			return cli.NewCommandError("watch", err)
		}
	}
	for _, file := range files {
		_ = evaluateFile(ctx, out, interp, file)
	}

	w, err := watch.New(watch.FromConfig(cfg.Watch, watchFlags.path), logger)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer func() { _ = w.Stop() }()

	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", watchFlags.path)

	err = w.Watch(ctx, func(paths []string) error {
		var errs []error
		for _, p := range paths {
			errs = append(errs, evaluateFile(ctx, out, interp, p))
		}
		return errors.Join(errs...)
	})
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	return nil
}

// evaluateFile reduces every expression in path and prints one line each.
// The returned error summarizes failures for the watcher's log.
func evaluateFile(ctx context.Context, w io.Writer, interp *boolexpr.Interpreter, path string) error {
	inputs, err := readInputFile(nil, path)
	if err != nil {
		fmt.Fprintf(w, "✗ %s: %s\n", path, err)
		return err
	}

	failed := 0
	for _, in := range inputs {
		r := evalInput(ctx, interp, in)
		if r.Error != "" {
			failed++
			fmt.Fprintf(w, "✗ %s: %s\n", r.Source, r.Error)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", r.Source, r.Value)
	}

	if failed > 0 {
		return fmt.Errorf("%s: %d of %d expression(s) failed", path, failed, len(inputs))
	}
	return nil
}

func serveMetrics(collector *metrics.Collector, cfg config.MetricsConfig, logger *slog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}

	srv := &http.Server{
		Handler:           collector.Mux(cfg.Path),
		ReadHeaderTimeout: shutdownTimeout,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	logger.Info("metrics server listening",
		"address", ln.Addr().String(),
		"path", cfg.Path,
	)
	return srv, nil
}
