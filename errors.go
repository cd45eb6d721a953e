package codexclean

import "github.com/wagiedev/codex-clean-go/internal/errors"

// Re-export error types from internal package

// CLINotFoundError indicates the codex binary was not found.
type CLINotFoundError = errors.CLINotFoundError

// SpawnError indicates the codex process could not be started.
type SpawnError = errors.SpawnError

// StdoutReadError indicates codex's stdout could not be read.
type StdoutReadError = errors.StdoutReadError

// StderrCaptureError indicates codex's stderr could not be fully drained.
// It is carried in Result and never returned as an error.
type StderrCaptureError = errors.StderrCaptureError

// PromptDeliveryError indicates the prompt could not be written to codex's stdin.
type PromptDeliveryError = errors.PromptDeliveryError

// ProcessError describes a codex process that exited unsuccessfully.
type ProcessError = errors.ProcessError

// ConfigError indicates the configuration file or environment was invalid.
type ConfigError = errors.ConfigError

// CodexCleanError is the base interface for all codex-clean errors.
type CodexCleanError = errors.CodexCleanError

// Re-export sentinel errors from internal package.
var (
	// ErrInvalidUTF8 indicates a stdout line was not valid UTF-8.
	ErrInvalidUTF8 = errors.ErrInvalidUTF8

	// ErrEmptyPrompt indicates an exec invocation without a usable prompt.
	ErrEmptyPrompt = errors.ErrEmptyPrompt

	// ErrMissingResumeTarget indicates resume was requested without a target.
	ErrMissingResumeTarget = errors.ErrMissingResumeTarget
)
