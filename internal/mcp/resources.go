package mcp

import (
	"context"
	"fmt"

	"godotmcp/internal/gateway"

	"github.com/mark3labs/mcp-go/mcp"
)

const jsonMIMEType = "application/json"

type resourceDefinition struct {
	uri         string
	name        string
	description string
	op          gateway.Operation
}

var resourceDefinitions = []resourceDefinition{
	{
		uri:         "godot://project-structure",
		name:        "Godot Project Structure",
		description: "Directory layout of the bound Godot project",
		op:          gateway.OpGetStructure,
	},
	{
		uri:         "godot://scenes",
		name:        "Godot Scenes",
		description: "All .tscn scene files in the bound project",
		op:          gateway.OpListScenes,
	},
	{
		uri:         "godot://scripts",
		name:        "GDScript Files",
		description: "All .gd script files in the bound project",
		op:          gateway.OpListScripts,
	},
}

func (s *Server) registerResources() {
	for _, def := range resourceDefinitions {
		resource := mcp.NewResource(def.uri, def.name,
			mcp.WithResourceDescription(def.description),
			mcp.WithMIMEType(jsonMIMEType),
		)
		s.mcpServer.AddResource(resource, s.handleResource(def))
	}
}

// handleResource returns the operation's envelope as JSON text. Failures such
// as an unbound project are part of the content, not protocol errors.
func (s *Server) handleResource(def resourceDefinition) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		s.logger.Debug("Resource read", "uri", def.uri)

		resp := s.gateway.Dispatch(ctx, def.op.String(), nil)
		text, err := encode(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", def.uri, err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      def.uri,
				MIMEType: jsonMIMEType,
				Text:     text,
			},
		}, nil
	}
}
