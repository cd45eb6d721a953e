package codexclean

import (
	"log/slog"

	"github.com/wagiedev/codex-clean-go/internal/config"
)

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithCliPath sets the explicit path to the codex binary.
// If not set, codex is searched in PATH and common install locations.
func WithCliPath(path string) Option {
	return func(o *Options) {
		o.CliPath = path
	}
}

// WithCwd sets the working directory for the codex process.
func WithCwd(cwd string) Option {
	return func(o *Options) {
		o.Cwd = cwd
	}
}

// WithEnv provides additional environment variables for the codex process.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithDefaultArgs sets arguments passed to `codex exec` before the caller's
// arguments. They are ignored when resuming.
func WithDefaultArgs(args ...string) Option {
	return func(o *Options) {
		o.DefaultArgs = args
	}
}

// WithStderrLimit caps the stderr bytes kept for failure reports.
// Default: 10MB. A negative limit keeps nothing.
func WithStderrLimit(limit int) Option {
	return func(o *Options) {
		o.StderrLimit = limit
	}
}

// WithMaxLineSize caps the length of a single stdout line.
// Default: 16MB.
func WithMaxLineSize(size int) Option {
	return func(o *Options) {
		o.MaxLineSize = size
	}
}

// WithConfig fills every option not set explicitly from a loaded config file.
// Env entries are merged, with explicit entries winning.
func WithConfig(file *ConfigFile) Option {
	return func(o *Options) {
		if file != nil {
			file.Apply(o)
		}
	}
}

// LoadConfig reads the config file ($CODEX_CLEAN_CONFIG, or
// $XDG_CONFIG_HOME/codex-clean/config.yaml) and applies the CODEX_CLEAN_*
// environment overrides. A missing file is not an error.
func LoadConfig() (*ConfigFile, error) {
	return config.Load()
}
