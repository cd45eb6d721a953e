package subprocess

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/codex-clean-go/internal/cli"
	"github.com/wagiedev/codex-clean-go/internal/config"
	"github.com/wagiedev/codex-clean-go/internal/errors"
	"github.com/wagiedev/codex-clean-go/internal/output"
)

// GenericFailureCode is reported when the child terminated without an exit
// code, e.g. because it was killed by a signal.
const GenericFailureCode = 1

// Result is the outcome of a codex run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// ExitCode is the child's raw exit code, or GenericFailureCode when it
	// terminated without one. Callers clamp it to a valid process exit code.
	ExitCode int `json:"exit_code"`

	// Stdout is the text to print on stdout: the session id and messages.
	Stdout string `json:"stdout"`

	// Stderr is the text to print on stderr: echoed child stderr on failure,
	// capture problems, and aggregation warnings.
	Stderr string `json:"stderr"`

	// Summary holds the aggregated events.
	Summary output.Summary `json:"summary"`

	// ChildStderr is the captured stderr of the child, at most the
	// configured limit.
	ChildStderr []byte `json:"-"`

	// StderrTruncated reports whether ChildStderr was cut at the limit.
	StderrTruncated bool `json:"stderr_truncated,omitempty"`

	// StderrCaptureErr is set when draining stderr failed. It never fails the run.
	StderrCaptureErr *errors.StderrCaptureError `json:"-"`
}

// Success reports whether codex exited with code 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner spawns codex and reports what it produced.
type Runner struct {
	log     *slog.Logger
	options *config.Options
}

// NewRunner creates a Runner with the given options.
func NewRunner(log *slog.Logger, options *config.Options) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	if options == nil {
		options = &config.Options{}
	}

	return &Runner{
		log:     log.With("component", "runner"),
		options: options,
	}
}

// Run executes one codex invocation to completion.
//
// The returned error is non-nil only for failures of the wrapper itself:
// codex could not be found or started (CLINotFoundError, SpawnError), its
// stdout could not be read (StdoutReadError), or the prompt could not be
// written to its stdin (PromptDeliveryError). A child that runs and exits
// unsuccessfully is reported through Result.ExitCode.
//
// No timeout is applied. Cancelling ctx kills the child; its pipes are then
// drained to EOF and the process is reaped as usual.
func (r *Runner) Run(ctx context.Context, inv cli.Invocation) (*Result, error) {
	runID := ulid.Make().String()
	log := r.log.With("run_id", runID)

	discoverer := cli.NewDiscoverer(&cli.Config{
		CliPath: r.options.CliPath,
		Logger:  log,
	})

	cliPath, err := discoverer.Discover(ctx)
	if err != nil {
		return nil, err
	}

	args, stdinPrompt := cli.BuildArgs(inv, r.options)
	log.Debug("Built command arguments", "args", args, "stdin_prompt", stdinPrompt)

	//nolint:gosec // G204: Subprocess launching with dynamic args is expected for CLI invocation
	cmd := exec.CommandContext(ctx, cliPath, args...)
	cmd.Dir = r.options.Cwd
	cmd.Env = cli.BuildEnvironment(r.options)

	var stdin io.WriteCloser
	if stdinPrompt {
		stdin, err = cmd.StdinPipe()
		if err != nil {
			return nil, &errors.SpawnError{Path: cliPath, Err: fmt.Errorf("stdin pipe: %w", err)}
		}
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &errors.SpawnError{Path: cliPath, Err: fmt.Errorf("stdout pipe: %w", err)}
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &errors.SpawnError{Path: cliPath, Err: fmt.Errorf("stderr pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		log.Error("Failed to start codex process", "error", err)

		return nil, &errors.SpawnError{Path: cliPath, Err: err}
	}

	log.Info("codex process started", "pid", cmd.Process.Pid)

	limit := r.options.EffectiveStderrLimit()

	// The stderr capture is owned by the drain goroutine until g.Wait returns.
	var (
		g       errgroup.Group
		capture Capture
	)

	g.Go(func() error {
		capture = CaptureStderr(stderr, limit)

		return nil
	})

	if stdinPrompt {
		g.Go(func() error {
			return deliverPrompt(stdin, inv.Prompt)
		})
	}

	agg, readErr := ParseStream(stdout, r.options.EffectiveMaxLineSize())
	if readErr != nil {
		log.Error("Failed to read codex stdout", "error", readErr)

		// Keep draining so the child can finish writing and exit.
		_, _ = io.Copy(io.Discard, stdout)
	}

	deliverErr := g.Wait()

	// Both pipes have reached EOF; only now is it safe to wait.
	waitErr := cmd.Wait()

	if readErr != nil {
		return nil, readErr
	}

	if deliverErr != nil {
		log.Error("Failed to deliver prompt on stdin", "error", deliverErr)

		return nil, deliverErr
	}

	exitCode, err := exitCodeOf(waitErr)
	if err != nil {
		return nil, fmt.Errorf("wait for codex process: %w", err)
	}

	if capture.Err != nil {
		log.Warn("stderr capture failed", "error", capture.Err)
	}

	if exitCode != 0 {
		log.Error("codex process exited with error",
			"exit_code", exitCode,
			"stderr_bytes", len(capture.Bytes),
			"stderr_truncated", capture.Truncated,
		)
	} else {
		log.Info("codex process exited successfully")
	}

	rendered := ComposeReport(exitCode, agg, capture, limit)

	return &Result{
		RunID:            runID,
		ExitCode:         exitCode,
		Stdout:           rendered.Stdout,
		Stderr:           rendered.Stderr,
		Summary:          agg.Summary(),
		ChildStderr:      capture.Bytes,
		StderrTruncated:  capture.Truncated,
		StderrCaptureErr: capture.Err,
	}, nil
}

// deliverPrompt writes the prompt line and closes stdin; codex only starts
// once it sees end of input.
func deliverPrompt(stdin io.WriteCloser, prompt string) error {
	_, err := io.WriteString(stdin, prompt+"\n")

	if closeErr := stdin.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		return &errors.PromptDeliveryError{Err: err}
	}

	return nil
}

// exitCodeOf maps the result of cmd.Wait to the child's exit code.
func exitCodeOf(waitErr error) (int, error) {
	if waitErr == nil {
		return 0, nil
	}

	if exitErr, ok := stderrors.AsType[*exec.ExitError](waitErr); ok {
		code := exitErr.ExitCode()
		if code < 0 {
			code = GenericFailureCode
		}

		return code, nil
	}

	return 0, waitErr
}
