package codexclean

import (
	"context"
	"strings"

	"github.com/wagiedev/codex-clean-go/internal/errors"
	"github.com/wagiedev/codex-clean-go/internal/subprocess"
)

// Run executes one codex invocation and waits for it to finish.
//
// The error is non-nil only when codex could not be found or started, when
// its stdout could not be read, or when a stdin prompt could not be
// delivered. A codex process that ran and failed is reported through
// Result.ExitCode and Result.Stderr.
func Run(ctx context.Context, inv Invocation, opts ...Option) (*Result, error) {
	options := applyOptions(opts)

	return subprocess.NewRunner(options.Logger, options).Run(ctx, inv)
}

// Exec starts a new codex session with the given prompt. args are passed
// to `codex exec` before the prompt.
func Exec(ctx context.Context, prompt string, args []string, opts ...Option) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.ErrEmptyPrompt
	}

	return Run(ctx, Invocation{Args: args, Prompt: prompt}, opts...)
}

// Resume continues a previous session. The prompt may be empty.
func Resume(ctx context.Context, target ResumeTarget, prompt string, opts ...Option) (*Result, error) {
	if target == nil {
		return nil, errors.ErrMissingResumeTarget
	}

	return Run(ctx, Invocation{Prompt: prompt, Resume: target}, opts...)
}

// ExitCode maps a codex exit code onto a valid process exit status.
// Codes outside 0-255 become 1.
func ExitCode(code int) int {
	if code < 0 || code > 255 {
		return subprocess.GenericFailureCode
	}

	return code
}
