package mcp

import (
	"fmt"

	"godotmcp/internal/config"
	"godotmcp/internal/gateway"

	"github.com/mark3labs/mcp-go/mcp"
)

type toolDefinition struct {
	op   gateway.Operation
	tool mcp.Tool
}

// legacyAliases maps tool names of earlier Godot MCP servers to operations.
var legacyAliases = []struct {
	name string
	op   gateway.Operation
}{
	{"set_godot_project", gateway.OpSetProject},
	{"create_gdscript", gateway.OpCreateScript},
	{"run_godot_command", gateway.OpRunCommand},
	{"send_to_godot", gateway.OpRelayToEngine},
}

func toolDefinitions() []toolDefinition {
	defs := []toolDefinition{
		{gateway.OpStatus, mcp.NewTool("status",
			mcp.WithDescription("Report server state and the currently bound Godot project"),
		)},
		{gateway.OpSetProject, newSetProjectTool("set_project")},
		{gateway.OpGetStructure, mcp.NewTool("get_structure",
			mcp.WithDescription("List the directories and files of the bound project, keyed by relative directory ('root' for the project root)"),
		)},
		{gateway.OpListScenes, mcp.NewTool("list_scenes",
			mcp.WithDescription("List every .tscn scene file in the bound project"),
		)},
		{gateway.OpListScripts, mcp.NewTool("list_scripts",
			mcp.WithDescription("List every .gd script file in the bound project"),
		)},
		{gateway.OpCreateScript, newCreateScriptTool("create_script")},
		{gateway.OpRunCommand, newRunCommandTool("run_command")},
		{gateway.OpAnalyzeScene, mcp.NewTool("analyze_scene",
			mcp.WithDescription("Classify a scene file's node, resource and connection section headers"),
			mcp.WithString("scene_path",
				mcp.Required(),
				mcp.Description("Scene path relative to the project root, e.g. scenes/main.tscn or res://scenes/main.tscn"),
			),
		)},
		{gateway.OpRelayToEngine, newRelayTool("relay_to_engine")},
		{gateway.OpReceiveFromEngine, mcp.NewTool("receive_from_engine",
			mcp.WithDescription("Acknowledge a JSON payload sent by a running Godot game"),
			mcp.WithString("type",
				mcp.Description("Payload type: game_event, player_action, ai_request or any other value"),
			),
		)},
	}

	for _, alias := range legacyAliases {
		var tool mcp.Tool
		switch alias.op {
		case gateway.OpSetProject:
			tool = newSetProjectTool(alias.name)
		case gateway.OpCreateScript:
			tool = newCreateScriptTool(alias.name)
		case gateway.OpRunCommand:
			tool = newRunCommandTool(alias.name)
		case gateway.OpRelayToEngine:
			tool = newRelayTool(alias.name)
		}
		tool.Description = fmt.Sprintf("Alias of %s. %s", alias.op, tool.Description)
		defs = append(defs, toolDefinition{alias.op, tool})
	}
	return defs
}

func newSetProjectTool(name string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription("Set the Godot project directory all other operations act on"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the Godot project directory"),
		),
	)
}

func newCreateScriptTool(name string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription("Create or overwrite a GDScript file in the bound project"),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Script file name; .gd is appended when missing"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("GDScript source, written verbatim"),
		),
		mcp.WithString("path",
			mcp.Description("Directory relative to the project root (default: project root)"),
		),
	)
}

func newRunCommandTool(name string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription("Run the Godot executable with a command and arguments; --path is added when a project is bound"),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("Godot command to execute (e.g., --headless, --export)"),
		),
		mcp.WithArray("args",
			mcp.Description("Additional arguments for the command"),
			mcp.WithStringItems(),
		),
	)
}

func newRelayTool(name string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription("Send a JSON payload to a running Godot instance over HTTP"),
		mcp.WithObject("data",
			mcp.Required(),
			mcp.Description("JSON payload to send"),
		),
		mcp.WithString("endpoint",
			mcp.Description("Endpoint path on the Godot side"),
			mcp.DefaultString(config.DefaultRelayEndpoint),
		),
		mcp.WithNumber("port",
			mcp.Description("Port the Godot instance listens on"),
			mcp.DefaultNumber(config.DefaultRelayPort),
		),
	)
}
