package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("parser.max_depth", "must be non-negative")
	want := "config error in parser.max_depth: must be non-negative"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("2 of 5 cases failed")
	err := NewCommandError("test", inner)

	if err.Error() != "command test failed: 2 of 5 cases failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("CommandError should unwrap to the inner error")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"command", NewCommandError("eval", errors.New("boom")), ExitFailure},
		{"plain", errors.New("boom"), ExitFailure},
		{"config", NewConfigError("format", "unsupported"), ExitUsage},
		{"wrapped config", fmt.Errorf("loading: %w", NewConfigError("path", "missing")), ExitUsage},
		{"command wrapping config", NewCommandError("eval", NewConfigError("format", "bad")), ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
