package errors

import (
	"errors"
	"fmt"
)

// CodexCleanError is the base interface for all codex-clean errors.
type CodexCleanError interface {
	error
	IsCodexCleanError() bool
}

// Compile-time verification that all error types implement CodexCleanError.
var (
	_ CodexCleanError = (*CLINotFoundError)(nil)
	_ CodexCleanError = (*SpawnError)(nil)
	_ CodexCleanError = (*StdoutReadError)(nil)
	_ CodexCleanError = (*StderrCaptureError)(nil)
	_ CodexCleanError = (*PromptDeliveryError)(nil)
	_ CodexCleanError = (*ProcessError)(nil)
	_ CodexCleanError = (*ConfigError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrInvalidUTF8 indicates a stdout line was not valid UTF-8.
	ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

	// ErrEmptyPrompt indicates an exec invocation without a usable prompt.
	ErrEmptyPrompt = errors.New("empty prompt provided")

	// ErrMissingResumeTarget indicates resume was requested without a session id or --last.
	ErrMissingResumeTarget = errors.New("either --last or SESSION_ID is required")
)

// CLINotFoundError indicates the codex binary was not found.
type CLINotFoundError struct {
	SearchedPaths []string
}

func (e *CLINotFoundError) Error() string {
	return fmt.Sprintf("codex CLI not found in: %v", e.SearchedPaths)
}

// IsCodexCleanError implements CodexCleanError.
func (e *CLINotFoundError) IsCodexCleanError() bool { return true }

// SpawnError indicates the codex process could not be started.
type SpawnError struct {
	Path string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn codex process %s: %v", e.Path, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsCodexCleanError implements CodexCleanError.
func (e *SpawnError) IsCodexCleanError() bool { return true }

// StdoutReadError indicates the child's stdout could not be read or decoded.
type StdoutReadError struct {
	Line int
	Err  error
}

func (e *StdoutReadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to read codex stdout (line %d): %v", e.Line, e.Err)
	}

	return fmt.Sprintf("failed to read codex stdout: %v", e.Err)
}

func (e *StdoutReadError) Unwrap() error {
	return e.Err
}

// IsCodexCleanError implements CodexCleanError.
func (e *StdoutReadError) IsCodexCleanError() bool { return true }

// StderrCaptureError indicates the stderr drain stopped on a read error.
// It is never fatal to a run.
type StderrCaptureError struct {
	Err error
}

func (e *StderrCaptureError) Error() string {
	return fmt.Sprintf("stderr capture failed: %v", e.Err)
}

func (e *StderrCaptureError) Unwrap() error {
	return e.Err
}

// IsCodexCleanError implements CodexCleanError.
func (e *StderrCaptureError) IsCodexCleanError() bool { return true }

// PromptDeliveryError indicates writing the prompt to the child's stdin failed.
type PromptDeliveryError struct {
	Err error
}

func (e *PromptDeliveryError) Error() string {
	return fmt.Sprintf("failed to write prompt to codex stdin: %v", e.Err)
}

func (e *PromptDeliveryError) Unwrap() error {
	return e.Err
}

// IsCodexCleanError implements CodexCleanError.
func (e *PromptDeliveryError) IsCodexCleanError() bool { return true }

// ProcessError describes a child that exited unsuccessfully.
type ProcessError struct {
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("codex process failed (exit %d)", e.ExitCode)
	}

	return fmt.Sprintf("codex process failed (exit %d): %s", e.ExitCode, e.Stderr)
}

// IsCodexCleanError implements CodexCleanError.
func (e *ProcessError) IsCodexCleanError() bool { return true }

// ConfigError indicates the configuration file could not be loaded.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsCodexCleanError implements CodexCleanError.
func (e *ConfigError) IsCodexCleanError() bool { return true }
