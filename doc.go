// Package codexclean runs the codex CLI non-interactively and reduces its
// JSON event stream to the parts a caller needs: the session id and the
// agent's messages.
//
// codex is started as `codex exec --experimental-json`. Its stdout is parsed
// line by line while its stderr is drained concurrently into a bounded
// buffer, so neither pipe can fill up and stall the child. Once both streams
// end the process is reaped and a report is composed. The captured stderr is
// only echoed when codex fails.
//
// # Basic Usage
//
//	result, err := codexclean.Exec(ctx, "Summarize README.md", nil)
//	if err != nil {
//	    log.Fatal(err) // codex could not be started or its output not read
//	}
//
//	fmt.Print(result.Stdout)
//	fmt.Fprint(os.Stderr, result.Stderr)
//	os.Exit(codexclean.ExitCode(result.ExitCode))
//
// # Resuming Sessions
//
// A session id printed by a previous run can be continued:
//
//	result, err := codexclean.Resume(ctx, codexclean.ResumeSession{ID: id}, "Now add tests")
//
// or the most recent session, in which case the prompt is written to
// codex's stdin:
//
//	result, err := codexclean.Resume(ctx, codexclean.ResumeLast{}, "Continue")
//
// # Configuration
//
// Options are applied with the functional options pattern:
//
//	result, err := codexclean.Exec(ctx, prompt, []string{"--model", "o3"},
//	    codexclean.WithLogger(slog.Default()),
//	    codexclean.WithCwd("/path/to/repo"),
//	    codexclean.WithStderrLimit(1<<20),
//	)
//
// LoadConfig reads the YAML config file and environment overrides; pass the
// result to WithConfig. Explicit options always take precedence.
//
// # MCP
//
// NewMCPServer exposes codex_exec and codex_resume as Model Context Protocol
// tools; ServeMCP serves them on stdin/stdout.
//
// # Error Handling
//
// Run, Exec and Resume return an error only when the wrapper itself fails.
// A codex process that exits unsuccessfully is reported in Result.ExitCode:
//
//	result, err := codexclean.Exec(ctx, prompt, nil)
//	if cliErr, ok := errors.AsType[*codexclean.CLINotFoundError](err); ok {
//	    fmt.Println("codex not installed, searched:", cliErr.SearchedPaths)
//	}
package codexclean
