//go:build integration

package integration

import (
	"errors"
	"strings"
	"testing"

	codexclean "github.com/wagiedev/codex-clean-go"
)

// skipIfCLINotInstalled skips the test if the error indicates codex is not found.
func skipIfCLINotInstalled(t *testing.T, err error) {
	t.Helper()

	if _, ok := errors.AsType[*codexclean.CLINotFoundError](err); ok {
		t.Skip("codex CLI not installed")
	}
}

// contains42 checks if a string contains "42" in various formats.
func contains42(s string) bool {
	lower := strings.ToLower(s)

	return strings.Contains(lower, "42") ||
		strings.Contains(lower, "forty-two") ||
		strings.Contains(lower, "forty two")
}

// readOnly keeps integration runs from touching the working tree.
var readOnly = []string{"--sandbox", "read-only"}
