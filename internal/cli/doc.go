// Package cli provides codex binary discovery and command building.
//
// # CLI Discovery
//
// The Discoverer interface locates the codex binary:
//
//	discoverer := cli.NewDiscoverer(&cli.Config{
//	    CliPath: "",           // Optional explicit path
//	    Logger:  slog.Default(),
//	})
//	cliPath, err := discoverer.Discover(ctx)
//
// Discovery searches in the following order:
//  1. Explicit path in Config.CliPath (if provided)
//  2. System PATH
//  3. Common installation directories (/usr/local/bin, /opt/homebrew/bin, ~/.local/bin)
//
// # Command Building
//
// BuildArgs shapes the `codex exec` invocation for a fresh run or a resumed
// session and reports whether the prompt has to be delivered on stdin:
//
//	args, stdinPrompt := cli.BuildArgs(inv, options)
//	env := cli.BuildEnvironment(options)
package cli
