// Package logging builds structured loggers on log/slog.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx = logging.WithRunID(ctx, logging.NewRunID())
//	logger.InfoContext(ctx, "expression reduced", "value", "True")
//	// {"level":"INFO","msg":"expression reduced","value":"True","run_id":"..."}
//
// Records logged with a context pick up the run_id, case and source
// fields stored in it. FromContext binds the same fields to a logger for
// code that logs without a context, such as the parser and reducer.
package logging
