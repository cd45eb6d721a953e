package mcp

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/codex-clean-go/internal/cli"
	"github.com/wagiedev/codex-clean-go/internal/subprocess"
)

// Executor runs one codex invocation. *subprocess.Runner implements it.
type Executor interface {
	Run(ctx context.Context, inv cli.Invocation) (*subprocess.Result, error)
}

// Compile-time verification that Runner implements Executor.
var _ Executor = (*subprocess.Runner)(nil)

// Server wraps the official MCP SDK server.
//
// Tools are kept in a local registry as well so they can be listed and
// called without a transport.
type Server struct {
	name    string
	version string
	log     *slog.Logger
	exec    Executor
	server  *mcp.Server

	mu    sync.RWMutex
	tools map[string]*registeredTool
}

// registeredTool holds tool metadata and handler for the local registry.
type registeredTool struct {
	tool    *mcp.Tool
	handler mcp.ToolHandler
}

// NewServer creates an MCP server with the codex tools registered.
func NewServer(log *slog.Logger, name, version string, exec Executor) *Server {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		name:    name,
		version: version,
		log:     log.With("component", "mcp"),
		exec:    exec,
		server:  mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
		tools:   make(map[string]*registeredTool, 2),
	}

	s.AddTool(execTool(), s.handleExec)
	s.AddTool(resumeTool(), s.handleResume)

	return s
}

// AddTool registers a tool with the server.
func (s *Server) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tools[tool.Name] = &registeredTool{
		tool:    tool,
		handler: handler,
	}

	s.server.AddTool(tool, handler)
}

// Name returns the server name.
func (s *Server) Name() string {
	return s.name
}

// Version returns the server version.
func (s *Server) Version() string {
	return s.version
}

// ListTools returns the registered tools ordered by name.
func (s *Server) ListTools() []*mcp.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*mcp.Tool, 0, len(s.tools))
	for _, t := range s.tools {
		result = append(result, t.tool)
	}

	slices.SortFunc(result, func(a, b *mcp.Tool) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return result
}

// CallTool executes a tool by name with raw JSON arguments.
// Unknown tools and handler failures are reported as error results.
func (s *Server) CallTool(ctx context.Context, name string, arguments json.RawMessage) *mcp.CallToolResult {
	s.mu.RLock()
	t, exists := s.tools[name]
	s.mu.RUnlock()

	if !exists {
		return ErrorResult("Tool not found: " + name)
	}

	req := &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{
			Name:      name,
			Arguments: arguments,
		},
	}

	result, err := t.handler(ctx, req)
	if err != nil {
		return ErrorResult("Tool execution failed: " + err.Error())
	}

	return result
}

// Run serves the tools over the given transport until the client
// disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.log.Info("Serving MCP tools", "name", s.name, "version", s.version)

	if err := s.server.Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

// ServeStdio serves the tools on the process's stdin and stdout.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

// ParseArguments unmarshals CallToolRequest arguments into v.
// Missing arguments leave v untouched.
func ParseArguments(req *mcp.CallToolRequest, v any) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}

	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return nil
}
