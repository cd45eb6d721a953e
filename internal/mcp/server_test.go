package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/wagiedev/codex-clean-go/internal/cli"
	"github.com/wagiedev/codex-clean-go/internal/config"
	"github.com/wagiedev/codex-clean-go/internal/errors"
	"github.com/wagiedev/codex-clean-go/internal/output"
	"github.com/wagiedev/codex-clean-go/internal/subprocess"
)

// fakeExecutor records invocations and returns a canned outcome.
type fakeExecutor struct {
	calls  []cli.Invocation
	result *subprocess.Result
	err    error
}

func (f *fakeExecutor) Run(_ context.Context, inv cli.Invocation) (*subprocess.Result, error) {
	f.calls = append(f.calls, inv)

	return f.result, f.err
}

func successResult() *subprocess.Result {
	return &subprocess.Result{
		RunID:    "01J0000000000000000000TEST",
		ExitCode: 0,
		Stdout:   "Session: abc\n\nHello\n",
		Summary:  output.Summary{SessionID: "abc", Messages: []string{"Hello"}},
	}
}

func textOf(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcpgo.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])

	return text.Text
}

func TestServerMetadataAndTools(t *testing.T) {
	server := NewServer(nil, "codex-clean", "1.2.3", &fakeExecutor{})

	require.Equal(t, "codex-clean", server.Name())
	require.Equal(t, "1.2.3", server.Version())

	tools := server.ListTools()
	require.Len(t, tools, 2)
	require.Equal(t, ToolExec, tools[0].Name)
	require.Equal(t, ToolResume, tools[1].Name)

	for _, tool := range tools {
		require.NotEmpty(t, tool.Description)
		require.NotNil(t, tool.OutputSchema)

		schema, err := json.Marshal(tool.InputSchema)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(schema, &decoded))
		require.Equal(t, "object", decoded["type"])
	}
}

func TestExecToolSchema(t *testing.T) {
	schema, ok := execTool().InputSchema.(*jsonschema.Schema)
	require.True(t, ok, "expected *jsonschema.Schema, got %T", execTool().InputSchema)

	require.Contains(t, schema.Properties, "prompt")
	require.Contains(t, schema.Properties, "args")
	require.Equal(t, []string{"prompt"}, schema.Required)
	require.Equal(t, "the prompt sent to codex", schema.Properties["prompt"].Description)
}

func TestCallTool_Exec(t *testing.T) {
	exec := &fakeExecutor{result: successResult()}
	server := NewServer(nil, "codex-clean", "test", exec)

	result := server.CallTool(context.Background(), ToolExec,
		json.RawMessage(`{"prompt":"say hi","args":["--model","o3"]}`))

	require.False(t, result.IsError)
	require.Equal(t, "Session: abc\n\nHello\n", textOf(t, result))
	require.Equal(t, RunOutput{
		RunID:   "01J0000000000000000000TEST",
		Summary: output.Summary{SessionID: "abc", Messages: []string{"Hello"}},
	}, result.StructuredContent)

	require.Equal(t, []cli.Invocation{{
		Args:   []string{"--model", "o3"},
		Prompt: "say hi",
	}}, exec.calls)
}

func TestCallTool_ExecRejectsEmptyPrompt(t *testing.T) {
	exec := &fakeExecutor{result: successResult()}
	server := NewServer(nil, "codex-clean", "test", exec)

	for _, args := range []string{``, `{}`, `{"prompt":"   "}`} {
		result := server.CallTool(context.Background(), ToolExec, json.RawMessage(args))

		require.True(t, result.IsError, "args %q", args)
		require.Equal(t, errors.ErrEmptyPrompt.Error(), textOf(t, result))
	}

	require.Empty(t, exec.calls)
}

func TestCallTool_Resume(t *testing.T) {
	tests := []struct {
		name string
		args string
		want cli.Invocation
	}{
		{
			name: "session id",
			args: `{"session_id":"s-1","prompt":"more"}`,
			want: cli.Invocation{Prompt: "more", Resume: config.ResumeSession{ID: "s-1"}},
		},
		{
			name: "last wins over session id",
			args: `{"session_id":"s-1","last":true,"prompt":"more"}`,
			want: cli.Invocation{Prompt: "more", Resume: config.ResumeLast{}},
		},
		{
			name: "session id without prompt",
			args: `{"session_id":"s-2"}`,
			want: cli.Invocation{Resume: config.ResumeSession{ID: "s-2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{result: successResult()}
			server := NewServer(nil, "codex-clean", "test", exec)

			result := server.CallTool(context.Background(), ToolResume, json.RawMessage(tt.args))

			require.False(t, result.IsError)
			require.Equal(t, []cli.Invocation{tt.want}, exec.calls)
		})
	}
}

func TestCallTool_ResumeRequiresTarget(t *testing.T) {
	exec := &fakeExecutor{result: successResult()}
	server := NewServer(nil, "codex-clean", "test", exec)

	result := server.CallTool(context.Background(), ToolResume, json.RawMessage(`{"prompt":"x"}`))

	require.True(t, result.IsError)
	require.Equal(t, errors.ErrMissingResumeTarget.Error(), textOf(t, result))
	require.Empty(t, exec.calls)
}

func TestCallTool_ChildFailure(t *testing.T) {
	exec := &fakeExecutor{result: &subprocess.Result{
		RunID:    "run",
		ExitCode: 2,
		Stderr:   "--- codex stderr ---\nboom\n--- end stderr ---\n",
	}}
	server := NewServer(nil, "codex-clean", "test", exec)

	result := server.CallTool(context.Background(), ToolExec, json.RawMessage(`{"prompt":"x"}`))

	require.True(t, result.IsError)
	require.Equal(t,
		"--- codex stderr ---\nboom\n--- end stderr ---\ncodex process failed (exit 2)\n",
		textOf(t, result),
	)

	structured, ok := result.StructuredContent.(RunOutput)
	require.True(t, ok)
	require.Equal(t, 2, structured.ExitCode)
}

func TestCallTool_WrapperFailure(t *testing.T) {
	exec := &fakeExecutor{err: &errors.CLINotFoundError{SearchedPaths: []string{"/nope/codex"}}}
	server := NewServer(nil, "codex-clean", "test", exec)

	result := server.CallTool(context.Background(), ToolExec, json.RawMessage(`{"prompt":"x"}`))

	require.True(t, result.IsError)
	require.Equal(t, "codex CLI not found in: [/nope/codex]", textOf(t, result))
	require.Nil(t, result.StructuredContent)
}

func TestCallTool_Errors(t *testing.T) {
	server := NewServer(nil, "codex-clean", "test", &fakeExecutor{})

	t.Run("unknown tool", func(t *testing.T) {
		result := server.CallTool(context.Background(), "unknown", nil)

		require.True(t, result.IsError)
		require.Equal(t, "Tool not found: unknown", textOf(t, result))
	})

	t.Run("invalid json", func(t *testing.T) {
		result := server.CallTool(context.Background(), ToolExec, json.RawMessage(`{"prompt":`))

		require.True(t, result.IsError)
		require.Contains(t, textOf(t, result), "failed to unmarshal arguments")
	})
}

func TestServer_InMemoryTransport(t *testing.T) {
	exec := &fakeExecutor{result: successResult()}
	server := NewServer(nil, "codex-clean", "test", exec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverTransport, clientTransport := mcpgo.NewInMemoryTransports()

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Run(ctx, serverTransport)
	}()

	client := mcpgo.NewClient(&mcpgo.Implementation{Name: "test-client", Version: "v0"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, tools.Tools, 2)

	result, err := session.CallTool(ctx, &mcpgo.CallToolParams{
		Name:      ToolExec,
		Arguments: map[string]any{"prompt": "say hi"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, "Session: abc\n\nHello\n", textOf(t, result))

	require.NoError(t, session.Close())

	cancel()
	<-errCh
}

func TestParseArguments(t *testing.T) {
	t.Run("nil request leaves value untouched", func(t *testing.T) {
		in := ExecInput{Prompt: "keep"}
		require.NoError(t, ParseArguments(nil, &in))
		require.Equal(t, "keep", in.Prompt)
	})

	t.Run("valid arguments are parsed", func(t *testing.T) {
		req := &mcpgo.CallToolRequest{
			Params: &mcpgo.CallToolParamsRaw{
				Arguments: []byte(`{"session_id":"s","last":true}`),
			},
		}

		var in ResumeInput
		require.NoError(t, ParseArguments(req, &in))
		require.Equal(t, ResumeInput{SessionID: "s", Last: true}, in)
	})
}
