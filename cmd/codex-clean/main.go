// Command codex-clean runs codex exec and prints only the session id and
// the agent's messages.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"unicode/utf8"

	"github.com/spf13/cobra"

	codexclean "github.com/wagiedev/codex-clean-go"
)

const usageLine = "Usage: codex-clean [ARGS...] <prompt>"

// app carries the process streams and settings shared by all commands.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	config *codexclean.ConfigFile
	logger *slog.Logger

	// exitCode is the status to exit with when no command failed.
	exitCode int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	file, err := codexclean.LoadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		config: file,
		logger: newLogger(file, stderr),
	}

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := execute(ctx, cmd, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 1
	}

	return a.exitCode
}

// execute runs the subcommand named by the first argument, or the root
// command with all arguments otherwise. cobra's own lookup skips unknown
// flags, which would turn a prompt like "resume" after codex flags into a
// subcommand.
func execute(ctx context.Context, cmd *cobra.Command, args []string) error {
	if len(args) > 0 && isSubcommand(cmd, args[0]) {
		return cmd.ExecuteContext(ctx)
	}

	cmd.SetContext(ctx)

	return cmd.RunE(cmd, args)
}

// isSubcommand reports whether name selects a subcommand of cmd.
func isSubcommand(cmd *cobra.Command, name string) bool {
	if name == "help" {
		return true
	}

	for _, sub := range cmd.Commands() {
		if sub.Name() == name || slices.Contains(sub.Aliases, name) {
			return true
		}
	}

	return false
}

// newLogger enables slog output on stderr only when a log level is
// configured; stderr otherwise carries codex's diagnostics alone.
func newLogger(file *codexclean.ConfigFile, stderr io.Writer) *slog.Logger {
	if !file.LoggingEnabled() {
		return codexclean.NopLogger()
	}

	level, err := file.Level()
	if err != nil {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// options returns the library options for this invocation.
func (a *app) options() []codexclean.Option {
	return []codexclean.Option{
		codexclean.WithLogger(a.logger),
		codexclean.WithConfig(a.config),
	}
}

// report prints a finished run and records its exit status.
func (a *app) report(result *codexclean.Result) {
	fmt.Fprint(a.stdout, result.Stdout)
	fmt.Fprint(a.stderr, result.Stderr)

	a.exitCode = codexclean.ExitCode(result.ExitCode)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codex-clean [ARGS...] <prompt>",
		Short: "Wraps codex exec and shows only session IDs and agent messages",
		Long: `codex-clean runs codex exec with JSON output and prints the session id
and the agent's messages. All arguments except the last are passed to codex
exec; the last argument is the prompt, or '-' to read it from stdin.`,
		Example: `  codex-clean "explain this repository"
  codex-clean -m gpt-5.2-codex --sandbox read-only "review main.go"
  git diff | codex-clean -`,
		Version: codexclean.Version,
		// Everything after the subcommand name belongs to codex exec.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceErrors:      true,
		SilenceUsage:       true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				switch args[0] {
				case "-h", "--help":
					return cmd.Help()
				case "-V", "--version":
					fmt.Fprintf(a.stdout, "codex-clean %s\n", codexclean.Version)

					return nil
				}
			}

			codexArgs, promptArg, err := splitCodexArgs(args)
			if err != nil {
				return err
			}

			prompt := promptArg
			if promptArg == "-" {
				prompt, err = readPrompt(a.stdin)
				if err != nil {
					return err
				}
			}

			result, err := codexclean.Exec(cmd.Context(), prompt, codexArgs, a.options()...)
			if err != nil {
				return err
			}

			a.report(result)

			return nil
		},
	}

	cmd.AddCommand(newResumeCmd(a), newMCPCmd(a))

	return cmd
}

func newResumeCmd(a *app) *cobra.Command {
	var last bool

	cmd := &cobra.Command{
		Use:   "resume [--last] [SESSION_ID] [PROMPT]",
		Short: "Resume an existing session",
		Long: `Resume a previous codex session by id. With --last the most recent
session is resumed and the first argument is the prompt.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, prompt, err := resumeTarget(last, args)
			if err != nil {
				return err
			}

			result, err := codexclean.Resume(cmd.Context(), target, prompt, a.options()...)
			if err != nil {
				return err
			}

			a.report(result)

			return nil
		},
	}

	cmd.Flags().BoolVar(&last, "last", false, "Use the most recent session")
	// Prompts after the session id may start with '-'.
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve codex_exec and codex_resume as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return codexclean.ServeMCP(cmd.Context(), a.options()...)
		},
	}
}

// splitCodexArgs separates the passthrough arguments from the prompt,
// which is always the final argument.
func splitCodexArgs(args []string) ([]string, string, error) {
	if len(args) == 0 {
		return nil, "", errors.New(usageLine + "\n\nNo prompt provided. Use '-' to read from stdin.")
	}

	codexArgs, promptArg := args[:len(args)-1], args[len(args)-1]

	if promptArg != "-" && strings.HasPrefix(promptArg, "-") {
		return nil, "", fmt.Errorf(
			"the final argument (%q) looks like a flag. Provide a prompt or terminate codex args with '--'",
			promptArg,
		)
	}

	return codexArgs, promptArg, nil
}

// resumeTarget interprets the resume positionals. With --last the first
// positional is the prompt; otherwise it is the session id.
func resumeTarget(last bool, args []string) (codexclean.ResumeTarget, string, error) {
	if last {
		if len(args) > 1 {
			return nil, "", fmt.Errorf("unexpected argument %q: with --last only a prompt is accepted", args[1])
		}

		prompt := ""
		if len(args) == 1 {
			prompt = args[0]
		}

		return codexclean.ResumeLast{}, prompt, nil
	}

	if len(args) == 0 {
		return nil, "", codexclean.ErrMissingResumeTarget
	}

	prompt := ""
	if len(args) == 2 {
		prompt = args[1]
	}

	return codexclean.ResumeSession{ID: args[0]}, prompt, nil
}

// readPrompt reads all of r, joining its lines with "\n" and dropping the
// final line terminator.
func readPrompt(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), codexclean.DefaultMaxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read prompt from stdin: %w", err)
	}

	prompt := strings.Join(lines, "\n")
	if !utf8.ValidString(prompt) {
		return "", fmt.Errorf("read prompt from stdin: %w", codexclean.ErrInvalidUTF8)
	}

	return prompt, nil
}
