package cli

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/wagiedev/codex-clean-go/internal/errors"
)

// BinaryName is the executable looked up in PATH.
const BinaryName = "codex"

// Config holds configuration for CLI discovery.
type Config struct {
	// CliPath is an explicit CLI path that skips PATH search.
	// If empty, discovery will search PATH and common locations.
	CliPath string

	// Logger is an optional logger for discovery operations.
	// If nil, a default no-op logger is used.
	Logger *slog.Logger
}

// Discoverer locates the codex binary.
type Discoverer interface {
	// Discover returns the path to the codex binary or a CLINotFoundError.
	Discover(ctx context.Context) (string, error)
}

// discoverer implements the Discoverer interface.
type discoverer struct {
	cfg *Config
	log *slog.Logger
}

// Compile-time verification that discoverer implements Discoverer.
var _ Discoverer = (*discoverer)(nil)

// NewDiscoverer creates a new CLI discoverer with the given configuration.
func NewDiscoverer(cfg *Config) Discoverer {
	if cfg == nil {
		cfg = &Config{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &discoverer{
		cfg: cfg,
		log: log,
	}
}

// Discover locates the codex binary.
func (d *discoverer) Discover(_ context.Context) (string, error) {
	d.log.Debug("Discovering codex binary")

	cliPath, err := d.findCLI()
	if err != nil {
		d.log.Debug("Failed to find codex", "error", err)

		return "", err
	}

	d.log.Debug("Found codex binary", "cli_path", cliPath)

	return cliPath, nil
}

// findCLI locates the codex binary.
func (d *discoverer) findCLI() (string, error) {
	// If explicit path provided, use it and only it
	if d.cfg.CliPath != "" {
		d.log.Debug("Using explicit CLI path", "cli_path", d.cfg.CliPath)

		if _, err := os.Stat(d.cfg.CliPath); err == nil {
			return d.cfg.CliPath, nil
		}

		return "", &errors.CLINotFoundError{SearchedPaths: []string{d.cfg.CliPath}}
	}

	searchedPaths := make([]string, 0, 4)

	if path, err := exec.LookPath(BinaryName); err == nil {
		d.log.Debug("Found codex in PATH", "path", path)

		return path, nil
	}

	searchedPaths = append(searchedPaths, "$PATH")

	commonPaths := []string{
		"/usr/local/bin/codex",
		"/opt/homebrew/bin/codex",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		commonPaths = append(commonPaths,
			filepath.Join(homeDir, ".local/bin/codex"),
			filepath.Join(homeDir, ".npm-global/bin/codex"),
		)
	}

	for _, path := range commonPaths {
		searchedPaths = append(searchedPaths, path)

		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			d.log.Debug("Found codex at common path", "path", path)

			return path, nil
		}
	}

	d.log.Warn("codex not found in any searched paths", "searched_paths", searchedPaths)

	return "", &errors.CLINotFoundError{SearchedPaths: searchedPaths}
}
