package validation

import (
	"fmt"
	"strings"
)

// ScriptExtension is appended to script names that lack it.
const ScriptExtension = ".gd"

// ResourcePrefix is Godot's project-root scheme, as in "res://scenes/main.tscn".
const ResourcePrefix = "res://"

// ScriptFilename checks a requested script name and returns it with the
// script extension applied. Subdirectories inside the name are allowed;
// containment is checked by the caller once the path is joined to a root.
func ScriptFilename(name string) (string, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}
	if strings.ContainsRune(clean, 0) {
		return "", fmt.Errorf("filename contains a NUL byte: %q", name)
	}
	if clean == "." || clean == ".." || strings.HasSuffix(clean, "/") {
		return "", fmt.Errorf("invalid filename: %q", name)
	}
	if !strings.HasSuffix(clean, ScriptExtension) {
		clean += ScriptExtension
	}
	return clean, nil
}

// ProjectRelative turns a client-supplied project path into one relative to
// the project root. The res:// prefix and leading slashes are removed.
func ProjectRelative(path string) string {
	p := strings.TrimSpace(path)
	p = strings.TrimPrefix(p, ResourcePrefix)
	return strings.TrimLeft(p, "/")
}

// Endpoint checks a relay endpoint path such as "/mcp-data".
func Endpoint(endpoint string) error {
	if !strings.HasPrefix(endpoint, "/") {
		return fmt.Errorf("endpoint must start with '/': %q", endpoint)
	}
	if strings.ContainsAny(endpoint, " \t\r\n") {
		return fmt.Errorf("endpoint contains whitespace: %q", endpoint)
	}
	if strings.Contains(endpoint, "://") {
		return fmt.Errorf("endpoint must be a path, not a URL: %q", endpoint)
	}
	return nil
}

// Port checks a TCP port number.
func Port(port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("port out of range: %d", port)
	}
	return nil
}
