package codexclean

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCLINotFoundError_Creation tests CLINotFoundError creation and formatting.
func TestCLINotFoundError_Creation(t *testing.T) {
	err := &CLINotFoundError{
		SearchedPaths: []string{"$PATH", "/usr/local/bin/codex"},
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "codex CLI not found")
	require.Contains(t, err.Error(), "/usr/local/bin/codex")
}

// TestSpawnError_Unwrap tests that SpawnError exposes its cause.
func TestSpawnError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("permission denied")
	err := &SpawnError{Path: "/bin/codex", Err: inner}

	require.Contains(t, err.Error(), "/bin/codex")
	require.ErrorIs(t, err, inner)
}

// TestStdoutReadError_InvalidUTF8 tests the sentinel is reachable through the wrapper.
func TestStdoutReadError_InvalidUTF8(t *testing.T) {
	var err error = &StdoutReadError{Line: 4, Err: ErrInvalidUTF8}

	require.ErrorIs(t, err, ErrInvalidUTF8)
	require.Contains(t, err.Error(), "line 4")
}

// TestPromptDeliveryError_Unwrap tests PromptDeliveryError wrapping.
func TestPromptDeliveryError_Unwrap(t *testing.T) {
	err := &PromptDeliveryError{Err: io.ErrClosedPipe}

	require.ErrorIs(t, err, io.ErrClosedPipe)
}

// TestErrorsImplementCodexCleanError tests every error type satisfies the marker interface.
func TestErrorsImplementCodexCleanError(t *testing.T) {
	errs := []error{
		&CLINotFoundError{},
		&SpawnError{},
		&StdoutReadError{},
		&StderrCaptureError{},
		&PromptDeliveryError{},
		&ProcessError{},
		&ConfigError{},
	}

	for _, err := range errs {
		t.Run(fmt.Sprintf("%T", err), func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", err)

			base, ok := errors.AsType[CodexCleanError](wrapped)
			require.True(t, ok)
			require.True(t, base.IsCodexCleanError())
		})
	}
}
