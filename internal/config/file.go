package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wagiedev/codex-clean-go/internal/errors"
)

// Environment variables read by Load.
const (
	EnvConfigPath  = "CODEX_CLEAN_CONFIG"
	EnvCliPath     = "CODEX_CLEAN_CLI_PATH"
	EnvStderrLimit = "CODEX_CLEAN_STDERR_LIMIT"
	EnvLogLevel    = "CODEX_CLEAN_LOG_LEVEL"
)

// File is the on-disk configuration.
//
//	cli_path: /opt/codex/bin/codex
//	stderr_limit_bytes: 1048576
//	default_args: ["-m", "gpt-5.2-codex"]
//	log_level: debug
type File struct {
	CliPath          string            `yaml:"cli_path"`
	StderrLimitBytes int               `yaml:"stderr_limit_bytes"`
	MaxLineBytes     int               `yaml:"max_line_bytes"`
	DefaultArgs      []string          `yaml:"default_args"`
	Env              map[string]string `yaml:"env"`
	LogLevel         string            `yaml:"log_level"`
}

// DefaultPath returns the config file location used when CODEX_CLEAN_CONFIG is unset.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}

		dir = filepath.Join(home, ".config")
	}

	return filepath.Join(dir, "codex-clean", "config.yaml")
}

// LoadFile reads a config file. A missing file yields an empty File.
func LoadFile(path string) (*File, error) {
	f := &File{}
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return f, nil
		}

		return nil, &errors.ConfigError{Path: path, Err: err}
	}

	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, &errors.ConfigError{Path: path, Err: err}
	}

	if f.StderrLimitBytes < 0 {
		return nil, &errors.ConfigError{
			Path: path,
			Err:  fmt.Errorf("stderr_limit_bytes must not be negative, got %d", f.StderrLimitBytes),
		}
	}

	if _, err := f.Level(); err != nil {
		return nil, &errors.ConfigError{Path: path, Err: err}
	}

	return f, nil
}

// Load reads the config file named by CODEX_CLEAN_CONFIG (or DefaultPath)
// and applies environment overrides on top of it.
func Load() (*File, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath()
	}

	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	if err := f.applyEnv(); err != nil {
		return nil, err
	}

	return f, nil
}

func (f *File) applyEnv() error {
	if v := os.Getenv(EnvCliPath); v != "" {
		f.CliPath = v
	}

	if v := os.Getenv(EnvStderrLimit); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return &errors.ConfigError{
				Path: EnvStderrLimit,
				Err:  fmt.Errorf("expected a non-negative byte count, got %q", v),
			}
		}

		f.StderrLimitBytes = limit
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		f.LogLevel = v

		if _, err := f.Level(); err != nil {
			return &errors.ConfigError{Path: EnvLogLevel, Err: err}
		}
	}

	return nil
}

// Level parses LogLevel. An empty LogLevel yields slog.LevelInfo.
func (f *File) Level() (slog.Level, error) {
	var level slog.Level
	if f.LogLevel == "" {
		return level, nil
	}

	if err := level.UnmarshalText([]byte(strings.TrimSpace(f.LogLevel))); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}

	return level, nil
}

// LoggingEnabled reports whether a log level was configured.
func (f *File) LoggingEnabled() bool {
	return f.LogLevel != ""
}

// Apply copies the configured values onto options, keeping any value the
// options already set explicitly.
func (f *File) Apply(o *Options) {
	if o.CliPath == "" {
		o.CliPath = f.CliPath
	}

	if o.StderrLimit == 0 {
		o.StderrLimit = f.StderrLimitBytes
	}

	if o.MaxLineSize == 0 {
		o.MaxLineSize = f.MaxLineBytes
	}

	if len(o.DefaultArgs) == 0 {
		o.DefaultArgs = f.DefaultArgs
	}

	if len(f.Env) > 0 {
		env := make(map[string]string, len(f.Env)+len(o.Env))
		maps.Copy(env, f.Env)
		maps.Copy(env, o.Env)
		o.Env = env
	}
}
