// Package main is the entry point for the godotmcp CLI application.
//
// godotmcp bridges MCP clients and HTTP callers to a local Godot project.
// The startup sequence is:
//
// 1. Parse flags and environment through cobra and viper
// 2. Load the YAML config file and apply overrides
// 3. Initialize logging on stderr (stdout belongs to the MCP stream)
// 4. Build the gateway and bind the configured project, if any
// 5. Serve the requested transports until EOF or a signal
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
