// Package mcp exposes codex runs as Model Context Protocol tools.
//
// The server registers two tools, codex_exec and codex_resume, on an
// official MCP SDK server. Each call runs codex to completion and returns
// the rendered report as text content plus a structured summary of the
// recognized events.
//
// Tools can also be invoked programmatically through Server.CallTool, which
// bypasses the transport.
package mcp
