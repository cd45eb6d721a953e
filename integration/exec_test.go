//go:build integration

package integration

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	codexclean "github.com/wagiedev/codex-clean-go"
)

// TestExecIntegration tests an end-to-end run against the real codex CLI.
func TestExecIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	result, err := codexclean.Exec(ctx, "What is 6 times 7? Reply with just the number.", readOnly)
	if err != nil {
		skipIfCLINotInstalled(t, err)
		t.Fatalf("Exec failed: %v", err)
	}

	require.True(t, result.Success(), "codex failed: %s", result.Stderr)
	require.NotEmpty(t, result.Summary.SessionID)
	require.NotEmpty(t, result.Summary.Messages)
	require.True(t, contains42(strings.Join(result.Summary.Messages, "\n")),
		"expected 42 in %q", result.Summary.Messages)
	require.True(t, strings.HasPrefix(result.Stdout, "Session: "+result.Summary.SessionID+"\n"))
}

// TestExecWithLoggerIntegration tests a run with an explicit logger.
func TestExecWithLoggerIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result, err := codexclean.Exec(ctx, "Say 'hello'.", readOnly, codexclean.WithLogger(logger))
	if err != nil {
		skipIfCLINotInstalled(t, err)
		t.Fatalf("Exec failed: %v", err)
	}

	require.NotEmpty(t, result.RunID)
}

// TestExecFailureIntegration tests that a rejected invocation echoes codex's stderr.
func TestExecFailureIntegration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	result, err := codexclean.Exec(ctx, "hello", []string{"--definitely-not-a-codex-flag"})
	if err != nil {
		skipIfCLINotInstalled(t, err)
		t.Fatalf("Exec failed: %v", err)
	}

	require.False(t, result.Success())
	require.Contains(t, result.Stderr, "--- codex stderr ---")
	require.NotEmpty(t, result.ChildStderr)
}
