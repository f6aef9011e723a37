package gateway

import (
	"strings"

	"godotmcp/internal/apperr"
)

// Operation is one of the fixed gateway operations.
type Operation int

const (
	OpStatus Operation = iota
	OpSetProject
	OpGetStructure
	OpListScenes
	OpListScripts
	OpCreateScript
	OpRunCommand
	OpAnalyzeScene
	OpRelayToEngine
	OpReceiveFromEngine

	opCount
)

var operationNames = [opCount]string{
	OpStatus:            "status",
	OpSetProject:        "set_project",
	OpGetStructure:      "get_structure",
	OpListScenes:        "list_scenes",
	OpListScripts:       "list_scripts",
	OpCreateScript:      "create_script",
	OpRunCommand:        "run_command",
	OpAnalyzeScene:      "analyze_scene",
	OpRelayToEngine:     "relay_to_engine",
	OpReceiveFromEngine: "receive_from_engine",
}

// legacyNames are the tool names used by earlier Godot MCP servers. Clients
// configured against them keep working.
var legacyNames = map[string]Operation{
	"set_godot_project": OpSetProject,
	"create_gdscript":   OpCreateScript,
	"run_godot_command": OpRunCommand,
	"send_to_godot":     OpRelayToEngine,
}

func (o Operation) String() string {
	if o >= 0 && o < opCount {
		return operationNames[o]
	}
	return "unknown"
}

// Operations lists every operation in declaration order.
func Operations() []Operation {
	ops := make([]Operation, 0, opCount)
	for op := Operation(0); op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// ParseOperation maps a wire name to an Operation.
func ParseOperation(name string) (Operation, error) {
	n := strings.TrimSpace(name)
	for op, opName := range operationNames {
		if opName == n {
			return Operation(op), nil
		}
	}
	if op, ok := legacyNames[n]; ok {
		return op, nil
	}
	return 0, apperr.New(apperr.UnknownOperation, "unknown operation: %s", name)
}
