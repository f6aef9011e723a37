// Package mcp provides the Model Context Protocol (MCP) transport for godotmcp using mcp-go.
//
// Every gateway operation is exposed as an MCP tool of the same name, and the
// project listings are also exposed as read-only resources. The package holds
// no business logic: each call is handed to the shared gateway.Gateway and its
// Response is returned as JSON text.
//
// # Implementation
//
// The package uses the mcp-go library (github.com/mark3labs/mcp-go) and
// communicates via stdin/stdout using JSON-RPC 2.0 as specified by the MCP
// standard. stdout carries only protocol messages; logs go to stderr.
//
// # Tools
//
//   - status: server and binding state
//   - set_project: bind the Godot project root
//   - get_structure, list_scenes, list_scripts: read the bound project
//   - create_script: write a GDScript file
//   - run_command: run the Godot binary with a timeout
//   - analyze_scene: classify a .tscn file's section headers
//   - relay_to_engine: POST JSON to a running game
//   - receive_from_engine: acknowledge a payload from the game
//
// The tool names of earlier Godot MCP servers (set_godot_project,
// create_gdscript, run_godot_command, send_to_godot) are registered as
// aliases.
//
// # Resources
//
//   - godot://project-structure
//   - godot://scenes
//   - godot://scripts
//
// # Errors
//
// A failed operation is returned as a tool result with isError set and the
// JSON envelope as its text, so the original error message and its kind are
// both visible to the client. Protocol-level errors are reserved for requests
// the server cannot route at all.
//
// # Usage
//
// The server is typically started as a subprocess by an MCP client:
//
//	godotmcp stdio
//
// It can share its project binding with the HTTP transport:
//
//	godotmcp stdio --http localhost:8081
//
// # References
//
// - MCP Specification: https://modelcontextprotocol.io/specification
// - mcp-go Library: https://github.com/mark3labs/mcp-go
package mcp
