// Package config provides configuration types for codex-clean.
package config

import "log/slog"

const (
	// DefaultStderrLimit is the number of stderr bytes retained per run.
	DefaultStderrLimit = 10 * 1024 * 1024 // 10MB

	// DefaultMaxLineSize is the longest stdout line accepted from codex.
	DefaultMaxLineSize = 16 * 1024 * 1024 // 16MB
)

// Options configures how codex is located and run.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// CliPath is the explicit path to the codex binary.
	// If empty, codex is searched in PATH and common install locations.
	CliPath string

	// Cwd sets the working directory for the codex process.
	// If empty, the current working directory is used.
	Cwd string

	// Env provides additional environment variables for the codex process.
	Env map[string]string

	// DefaultArgs are passed to `codex exec` before the caller's arguments.
	// They are not used when resuming a session.
	DefaultArgs []string

	// StderrLimit caps the stderr bytes kept for failure reports.
	// Zero means DefaultStderrLimit; a negative value keeps nothing.
	StderrLimit int

	// MaxLineSize caps the length of a single stdout line.
	// Zero means DefaultMaxLineSize.
	MaxLineSize int
}

// EffectiveStderrLimit returns the stderr cap in bytes.
func (o *Options) EffectiveStderrLimit() int {
	switch {
	case o.StderrLimit == 0:
		return DefaultStderrLimit
	case o.StderrLimit < 0:
		return 0
	default:
		return o.StderrLimit
	}
}

// EffectiveMaxLineSize returns the stdout line limit in bytes.
func (o *Options) EffectiveMaxLineSize() int {
	if o.MaxLineSize <= 0 {
		return DefaultMaxLineSize
	}

	return o.MaxLineSize
}
