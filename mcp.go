package codexclean

import (
	"context"

	internalmcp "github.com/wagiedev/codex-clean-go/internal/mcp"
	"github.com/wagiedev/codex-clean-go/internal/subprocess"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// MCPServer exposes codex runs as the codex_exec and codex_resume tools.
type MCPServer = internalmcp.Server

// Tool names served by MCPServer.
const (
	MCPToolExec   = internalmcp.ToolExec
	MCPToolResume = internalmcp.ToolResume
)

// NewMCPServer creates an MCP server whose tools run codex with the given
// options.
func NewMCPServer(opts ...Option) *MCPServer {
	options := applyOptions(opts)

	return internalmcp.NewServer(
		options.Logger,
		"codex-clean",
		Version,
		subprocess.NewRunner(options.Logger, options),
	)
}

// ServeMCP serves the codex tools over stdio until the client disconnects
// or ctx is cancelled.
func ServeMCP(ctx context.Context, opts ...Option) error {
	return NewMCPServer(opts...).ServeStdio(ctx)
}
