package cli

import (
	"fmt"
	"os"

	"github.com/wagiedev/codex-clean-go/internal/config"
)

// Invocation is what the caller asks codex to do.
type Invocation struct {
	// Args are passed through to `codex exec` ahead of the prompt.
	// Ignored when Resume is set.
	Args []string

	// Prompt is the user prompt. It may be empty when resuming.
	Prompt string

	// Resume continues an existing session when non-nil.
	Resume config.ResumeTarget
}

// BuildArgs constructs the codex command arguments.
//
// Every invocation runs `codex exec` with JSON event output and without the
// git repository check. stdinPrompt is true when the prompt cannot be passed
// positionally (resume --last) and must be written to stdin instead.
func BuildArgs(inv Invocation, options *config.Options) (args []string, stdinPrompt bool) {
	args = []string{
		"exec",
		"--experimental-json",
		"--skip-git-repo-check",
	}

	switch target := inv.Resume.(type) {
	case nil:
		args = append(args, options.DefaultArgs...)
		args = append(args, inv.Args...)
		args = append(args, inv.Prompt)

	case config.ResumeSession:
		args = append(args, "resume", target.ID)
		if inv.Prompt != "" {
			args = append(args, inv.Prompt)
		}

	case config.ResumeLast:
		args = append(args, "resume", "--last")
		stdinPrompt = inv.Prompt != ""
	}

	return args, stdinPrompt
}

// BuildEnvironment constructs the environment variables for the codex process.
func BuildEnvironment(options *config.Options) []string {
	env := os.Environ()

	for key, value := range options.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}

	return env
}
