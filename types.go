package codexclean

import (
	"github.com/wagiedev/codex-clean-go/internal/cli"
	"github.com/wagiedev/codex-clean-go/internal/config"
	"github.com/wagiedev/codex-clean-go/internal/event"
	"github.com/wagiedev/codex-clean-go/internal/output"
	"github.com/wagiedev/codex-clean-go/internal/subprocess"
)

// Re-export types from internal packages

// ===== Options and Configuration =====

// Options configures how codex is located and run.
type Options = config.Options

// ConfigFile is the on-disk configuration, see LoadConfig.
type ConfigFile = config.File

const (
	// DefaultStderrLimit is the number of stderr bytes kept per run.
	DefaultStderrLimit = config.DefaultStderrLimit

	// DefaultMaxLineSize is the longest stdout line accepted from codex.
	DefaultMaxLineSize = config.DefaultMaxLineSize
)

// ===== Invocation =====

// Invocation describes one codex run.
type Invocation = cli.Invocation

// ResumeTarget selects the session to continue.
// Implemented by ResumeSession and ResumeLast.
type ResumeTarget = config.ResumeTarget

// ResumeSession continues the session with the given id.
type ResumeSession = config.ResumeSession

// ResumeLast continues the most recent session.
type ResumeLast = config.ResumeLast

// ===== Results =====

// Result is the outcome of a codex run.
type Result = subprocess.Result

// Summary holds the events recognized in codex's output.
type Summary = output.Summary

// ===== Events =====

// Event is a recognized codex event: ThreadStarted or AgentMessage.
type Event = event.Event

// ThreadStarted reports the session id of the run.
type ThreadStarted = event.ThreadStarted

// AgentMessage carries one completed agent message.
type AgentMessage = event.AgentMessage

// ExtractEvent recognizes a single line of codex's JSON output.
// It reports false for anything that is not a recognized event.
func ExtractEvent(line string) (Event, bool) {
	return event.Extract(line)
}
