package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"godotmcp/internal/engine"
	"godotmcp/internal/gateway"
	"godotmcp/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestServer(t *testing.T) *Server {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	runner := engine.NewRunner([]string{"godot"}, time.Second, logger)
	runner.LookPath = func(string) (string, error) { return "", errors.New("not found") }
	gw := gateway.New(gateway.Options{Runner: runner, Logger: logger})
	return NewServer(gw, logger, "test")
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) (*mcp.CallToolResult, map[string]any) {
	t.Helper()

	var def *toolDefinition
	for _, d := range toolDefinitions() {
		if d.tool.Name == name {
			d := d
			def = &d
			break
		}
	}
	require.NotNil(t, def, "tool %s not defined", name)

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := s.handleTool(def.op)(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body))
	return result, body
}

func TestNewServer(t *testing.T) {
	s := createTestServer(t)

	if s.MCPServer() == nil {
		t.Fatal("MCP server should be created by NewServer")
	}
	if s.gateway == nil {
		t.Error("Server gateway not set correctly")
	}
}

func TestToolDefinitions_CoverEveryOperation(t *testing.T) {
	covered := map[gateway.Operation]bool{}
	names := map[string]bool{}

	for _, d := range toolDefinitions() {
		assert.False(t, names[d.tool.Name], "duplicate tool %s", d.tool.Name)
		names[d.tool.Name] = true
		covered[d.op] = true

		if op, err := gateway.ParseOperation(d.tool.Name); assert.NoError(t, err) {
			assert.Equal(t, d.op, op, "tool %s routes to the wrong operation", d.tool.Name)
		}
	}

	for _, op := range gateway.Operations() {
		assert.True(t, covered[op], "operation %s has no tool", op)
		assert.True(t, names[op.String()], "no tool named %s", op)
	}
}

func TestToolsList(t *testing.T) {
	s := createTestServer(t)

	msg := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(msg)
	require.NoError(t, err)

	var resp struct {
		Result struct {
			Tools []struct {
				Name        string         `json:"name"`
				InputSchema map[string]any `json:"inputSchema"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(data, &resp))

	got := map[string]map[string]any{}
	for _, tool := range resp.Result.Tools {
		got[tool.Name] = tool.InputSchema
	}
	assert.Len(t, got, len(gateway.Operations())+len(legacyAliases))
	assert.Contains(t, got, "run_godot_command")
	assert.Equal(t, []any{"command"}, got["run_command"]["required"])
}

func TestSetProjectAndListScripts(t *testing.T) {
	s := createTestServer(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scripts"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "scripts", "player.gd"), []byte("extends Node"), 0644))

	result, body := callTool(t, s, "set_project", map[string]any{"path": root})
	assert.False(t, result.IsError)
	assert.Equal(t, true, body["success"])

	result, body = callTool(t, s, "list_scripts", nil)
	assert.False(t, result.IsError)
	scripts := body["scripts"].([]any)
	require.Len(t, scripts, 1)
	assert.Equal(t, "scripts/player.gd", scripts[0].(map[string]any)["relative_path"])
}

func TestToolFailureIsToolError(t *testing.T) {
	s := createTestServer(t)

	result, body := callTool(t, s, "list_scenes", nil)

	assert.True(t, result.IsError)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "no_project_bound", body["error_kind"])
	assert.Contains(t, body["error"], "no project path set")
}

func TestLegacyAlias(t *testing.T) {
	s := createTestServer(t)

	result, body := callTool(t, s, "run_godot_command", map[string]any{"command": "--version"})

	assert.True(t, result.IsError)
	assert.Equal(t, "executable_not_found", body["error_kind"])
}

func TestResources(t *testing.T) {
	s := createTestServer(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.tscn"), []byte("[gd_scene]"), 0644))

	def := resourceDefinitions[1]
	require.Equal(t, "godot://scenes", def.uri)

	// Unbound: the failure is reported as content.
	contents, err := s.handleResource(def)(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	text := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, jsonMIMEType, text.MIMEType)
	assert.Contains(t, text.Text, `"success": false`)

	_, err = s.gateway.Binding().Set(root)
	require.NoError(t, err)

	contents, err = s.handleResource(def)(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	text = contents[0].(mcp.TextResourceContents)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &body))
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["scenes"], 1)
}

func TestServe_StopsOnEOF(t *testing.T) {
	s := createTestServer(t)

	var out strings.Builder
	err := s.Serve(context.Background(), strings.NewReader(""), &out)
	assert.NoError(t, err)
}
