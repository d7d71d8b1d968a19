package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for run IDs.
	RunIDKey contextKey = "run_id"

	// CaseKey is the context key for suite case names.
	CaseKey contextKey = "case"

	// SourceKey is the context key for the file an expression came from.
	SourceKey contextKey = "source"
)

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds a run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// EnsureRunID returns ctx unchanged if it already carries a run ID,
// otherwise a child context with a new one.
func EnsureRunID(ctx context.Context) (context.Context, string) {
	if runID := GetRunID(ctx); runID != "" {
		return ctx, runID
	}
	runID := NewRunID()
	return WithRunID(ctx, runID), runID
}

// WithCase adds a suite case name to the context.
func WithCase(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, CaseKey, name)
}

// GetCase retrieves the suite case name from the context.
func GetCase(ctx context.Context) string {
	if name, ok := ctx.Value(CaseKey).(string); ok {
		return name
	}
	return ""
}

// WithSource adds a source file name to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the source file name from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
func extractContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}

	var fields []slog.Attr
	if runID := GetRunID(ctx); runID != "" {
		fields = append(fields, slog.String(string(RunIDKey), runID))
	}
	if name := GetCase(ctx); name != "" {
		fields = append(fields, slog.String(string(CaseKey), name))
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, slog.String(string(SourceKey), source))
	}
	return fields
}

// ContextHandler adds the context fields to every record it handles.
type ContextHandler struct {
	next slog.Handler
}

// NewContextHandler wraps next.
func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

// Enabled implements slog.Handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if fields := extractContextFields(ctx); len(fields) > 0 {
		r = r.Clone()
		r.AddAttrs(fields...)
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}

// FromContext returns logger with the context fields bound as attributes.
// Use it where the logger is handed to code that logs without a context.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	fields := extractContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	args := make([]any, len(fields))
	for i, f := range fields {
		args[i] = f
	}
	return logger.With(args...)
}
