package mcp

import (
	"context"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/codex-clean-go/internal/cli"
	"github.com/wagiedev/codex-clean-go/internal/config"
	"github.com/wagiedev/codex-clean-go/internal/errors"
	"github.com/wagiedev/codex-clean-go/internal/output"
	"github.com/wagiedev/codex-clean-go/internal/subprocess"
)

const (
	// ToolExec is the name of the tool that starts a new codex session.
	ToolExec = "codex_exec"

	// ToolResume is the name of the tool that continues a codex session.
	ToolResume = "codex_resume"
)

// ExecInput is the argument object of codex_exec.
type ExecInput struct {
	Prompt string   `json:"prompt" jsonschema:"the prompt sent to codex"`
	Args   []string `json:"args,omitempty" jsonschema:"extra arguments for codex exec, placed before the prompt"`
}

// ResumeInput is the argument object of codex_resume.
type ResumeInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"session to resume; required unless last is set"`
	Last      bool   `json:"last,omitempty" jsonschema:"resume the most recent session"`
	Prompt    string `json:"prompt,omitempty" jsonschema:"follow-up prompt"`
}

// RunOutput is the structured content returned by both tools.
type RunOutput struct {
	RunID           string         `json:"run_id" jsonschema:"identifier of the run in logs"`
	ExitCode        int            `json:"exit_code" jsonschema:"exit code of the codex process"`
	Summary         output.Summary `json:"summary" jsonschema:"events recognized in the codex output"`
	StderrTruncated bool           `json:"stderr_truncated,omitempty" jsonschema:"whether the echoed codex stderr was cut"`
}

func execTool() *mcp.Tool {
	return &mcp.Tool{
		Name:         ToolExec,
		Description:  "Run codex exec with a prompt and return the session id and agent messages.",
		InputSchema:  mustSchema[ExecInput](),
		OutputSchema: mustSchema[RunOutput](),
	}
}

func resumeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:         ToolResume,
		Description:  "Resume a codex session by id, or the most recent one, and return the agent messages.",
		InputSchema:  mustSchema[ResumeInput](),
		OutputSchema: mustSchema[RunOutput](),
	}
}

// mustSchema infers a JSON schema for T. The tool types are fixed, so a
// failure is a programming error.
func mustSchema[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(err)
	}

	return schema
}

func (s *Server) handleExec(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in ExecInput
	if err := ParseArguments(req, &in); err != nil {
		return ErrorResult(err.Error()), nil
	}

	if strings.TrimSpace(in.Prompt) == "" {
		return ErrorResult(errors.ErrEmptyPrompt.Error()), nil
	}

	return s.run(ctx, cli.Invocation{Args: in.Args, Prompt: in.Prompt}), nil
}

func (s *Server) handleResume(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in ResumeInput
	if err := ParseArguments(req, &in); err != nil {
		return ErrorResult(err.Error()), nil
	}

	var target config.ResumeTarget

	switch {
	case in.Last:
		target = config.ResumeLast{}
	case in.SessionID != "":
		target = config.ResumeSession{ID: in.SessionID}
	default:
		return ErrorResult(errors.ErrMissingResumeTarget.Error()), nil
	}

	return s.run(ctx, cli.Invocation{Prompt: in.Prompt, Resume: target}), nil
}

// run executes the invocation and converts the outcome into a tool result.
// Wrapper failures become error results; a failed child sets IsError but
// still carries the full report.
func (s *Server) run(ctx context.Context, inv cli.Invocation) *mcp.CallToolResult {
	result, err := s.exec.Run(ctx, inv)
	if err != nil {
		s.log.Error("codex run failed", "error", err)

		return ErrorResult(err.Error())
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: reportText(result)},
		},
		StructuredContent: RunOutput{
			RunID:           result.RunID,
			ExitCode:        result.ExitCode,
			Summary:         result.Summary,
			StderrTruncated: result.StderrTruncated,
		},
		IsError: !result.Success(),
	}
}

// reportText joins the rendered stdout and stderr the way a terminal would
// show them.
func reportText(result *subprocess.Result) string {
	var sb strings.Builder

	sb.WriteString(result.Stdout)

	if result.Stderr != "" {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
			sb.WriteByte('\n')
		}

		sb.WriteString(result.Stderr)
	}

	if !result.Success() {
		sb.WriteString((&errors.ProcessError{ExitCode: result.ExitCode}).Error())
		sb.WriteByte('\n')
	}

	return sb.String()
}
