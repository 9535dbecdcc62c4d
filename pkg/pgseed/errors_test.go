package pgseed_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/pgseed/pkg/pgseed"
)

func TestExitCodeForError_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown flag", errors.New("unknown flag --foo"), pgseed.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), pgseed.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), pgseed.ExitUsageError},
		{"required flag", errors.New("required flag \"database\" not set"), pgseed.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), pgseed.ExitUsageError},
		{"general error", errors.New("something went wrong"), pgseed.ExitGeneralError},
		{"nil error", nil, pgseed.ExitSuccess},
		{"connection failed", pgseed.ErrConnectionFailed, pgseed.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), pgseed.ExitConnectionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pgseed.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeForError_WrappedSentinels(t *testing.T) {
	tests := []struct {
		sentinel error
		want     int
	}{
		{pgseed.ErrInvalidConfig, pgseed.ExitConfigError},
		{pgseed.ErrInputNotFound, pgseed.ExitInputMissing},
		{pgseed.ErrOutputFailed, pgseed.ExitOutputFailed},
		{pgseed.ErrApprovalDenied, pgseed.ExitApprovalDenied},
		{pgseed.ErrExecutionFailed, pgseed.ExitExecutionFailed},
		{pgseed.ErrUnsupportedAuthMethod, pgseed.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.sentinel.Error(), func(t *testing.T) {
			err := fmt.Errorf("outer context: %w", tt.sentinel)
			if got := pgseed.ExitCodeForError(err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", err, got, tt.want)
			}
		})
	}
}
