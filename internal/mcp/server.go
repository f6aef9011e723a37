package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"godotmcp/internal/gateway"
	"godotmcp/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is announced during the MCP handshake.
const ServerName = "godotmcp"

// Server represents an MCP server instance using mcp-go
type Server struct {
	gateway   *gateway.Gateway
	logger    *logging.AppLogger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server with every tool and resource registered.
func NewServer(gw *gateway.Gateway, logger *logging.AppLogger, version string) *Server {
	if logger == nil {
		logger = logging.GetDefault()
	}

	s := &Server{
		gateway: gw,
		logger:  logger,
		mcpServer: server.NewMCPServer(
			ServerName,
			version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithRecovery(),
		),
	}

	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve speaks MCP over in and out until ctx is cancelled or in is closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("Starting MCP stdio transport")

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(s.logger.StandardLogger())

	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	s.logger.Info("MCP stdio transport stopped")
	return nil
}

func (s *Server) registerTools() {
	for _, t := range toolDefinitions() {
		s.mcpServer.AddTool(t.tool, s.handleTool(t.op))
	}
}

// handleTool adapts one gateway operation to an mcp-go tool handler.
func (s *Server) handleTool(op gateway.Operation) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.logger.Debug("Tool called", "tool", req.Params.Name, "operation", op.String())

		resp := s.gateway.Dispatch(ctx, op.String(), req.GetArguments())

		text, err := encode(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s result: %w", op, err)
		}
		if !resp.Success {
			return mcp.NewToolResultError(text), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func encode(resp gateway.Response) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
