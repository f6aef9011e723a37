// Package gateway is the single entry point both transports call into.
//
// A call is decoded from an operation name and an argument map, validated,
// routed through a fixed dispatch table to one collaborator, and encoded as
// a Response. Every failure, including a panic in a collaborator, becomes a
// failed Response; nothing escapes to the transport.
package gateway

import (
	"context"
	"fmt"
	"os"
	"time"

	"godotmcp/internal/apperr"
	"godotmcp/internal/config"
	"godotmcp/internal/engine"
	"godotmcp/internal/explorer"
	"godotmcp/internal/logging"
	"godotmcp/internal/metrics"
	"godotmcp/internal/project"
	"godotmcp/internal/relay"
	"godotmcp/internal/scene"
	"godotmcp/internal/scripts"
	"godotmcp/internal/validation"
	"godotmcp/internal/vcs"
)

// DefaultServerName is reported by the status operation.
const DefaultServerName = "Godot MCP Server"

type handlerFunc func(ctx context.Context, args Args) (map[string]any, error)

// Options configures a Gateway. Nil collaborators get defaults.
type Options struct {
	Name    string
	Version string
	Binding *project.Binding
	Runner  *engine.Runner
	Relay   *relay.Client
	Logger  *logging.AppLogger
}

// Gateway routes operations to collaborators. It is safe for concurrent use;
// the project binding is its only shared state.
type Gateway struct {
	name     string
	version  string
	binding  *project.Binding
	runner   *engine.Runner
	relay    *relay.Client
	logger   *logging.AppLogger
	handlers map[Operation]handlerFunc
}

// New creates a Gateway.
func New(opts Options) *Gateway {
	if opts.Logger == nil {
		opts.Logger = logging.GetDefault()
	}
	if opts.Name == "" {
		opts.Name = DefaultServerName
	}
	if opts.Binding == nil {
		opts.Binding = &project.Binding{}
	}
	if opts.Runner == nil {
		opts.Runner = engine.NewRunner(config.DefaultExecutables, config.DefaultCommandTimeout, opts.Logger)
	}
	if opts.Relay == nil {
		opts.Relay = relay.NewClient(config.DefaultRelayHost, config.DefaultRelayPort,
			config.DefaultRelayEndpoint, config.DefaultRelayTimeout, opts.Logger)
	}

	g := &Gateway{
		name:    opts.Name,
		version: opts.Version,
		binding: opts.Binding,
		runner:  opts.Runner,
		relay:   opts.Relay,
		logger:  opts.Logger,
	}
	g.handlers = map[Operation]handlerFunc{
		OpStatus:            g.status,
		OpSetProject:        g.setProject,
		OpGetStructure:      g.getStructure,
		OpListScenes:        g.listScenes,
		OpListScripts:       g.listScripts,
		OpCreateScript:      g.createScript,
		OpRunCommand:        g.runCommand,
		OpAnalyzeScene:      g.analyzeScene,
		OpRelayToEngine:     g.relayToEngine,
		OpReceiveFromEngine: g.receiveFromEngine,
	}
	return g
}

// Binding returns the project binding shared by every transport.
func (g *Gateway) Binding() *project.Binding {
	return g.binding
}

// Dispatch runs the named operation. It never panics and never returns a
// response that is both successful and carrying an error.
func (g *Gateway) Dispatch(ctx context.Context, name string, args map[string]any) (resp Response) {
	start := time.Now()
	label := name

	defer func() {
		if p := recover(); p != nil {
			g.logger.Error("Operation panicked", "operation", label, "panic", p)
			resp = fail(apperr.New(apperr.Internal, "internal error: %v", p))
		}

		result := metrics.ResultSuccess
		if !resp.Success {
			result = resp.Kind.String()
		}
		metrics.RecordOperation(label, result, time.Since(start))
		g.logger.LogPerformance(label, start)
	}()

	op, err := ParseOperation(name)
	if err != nil {
		label = "unknown"
		g.logger.Warn("Rejected unknown operation", "name", name)
		return fail(err)
	}
	label = op.String()

	handler, ok := g.handlers[op]
	if !ok {
		return fail(apperr.New(apperr.UnknownOperation, "operation %s has no handler", op))
	}

	if args == nil {
		args = map[string]any{}
	}

	payload, err := handler(ctx, Args(args))
	if err != nil {
		g.logFailure(op, err)
		return fail(err)
	}

	g.logger.Debug("Operation completed", "operation", label)
	return succeed(payload)
}

func (g *Gateway) logFailure(op Operation, err error) {
	switch apperr.KindOf(err) {
	case apperr.IOError, apperr.Internal:
		g.logger.Error("Operation failed", "operation", op.String(), "error", err)
	default:
		g.logger.Warn("Operation failed", "operation", op.String(), "kind", apperr.KindOf(err).String(), "error", err)
	}
}

func (g *Gateway) status(_ context.Context, _ Args) (map[string]any, error) {
	current := g.binding.Current()
	hasProject := false
	if current != "" {
		if info, err := os.Stat(current); err == nil && info.IsDir() {
			hasProject = true
		}
	}

	payload := map[string]any{
		"status":       "active",
		"server":       g.name,
		"project_path": current,
		"has_project":  hasProject,
	}
	if g.version != "" {
		payload["version"] = g.version
	}
	if hasProject {
		info, err := vcs.Describe(current)
		if err != nil {
			g.logger.Debug("Could not describe project repository", "path", current, "error", err)
		} else if info != nil {
			payload["vcs"] = info
		}
	}
	return payload, nil
}

func (g *Gateway) setProject(_ context.Context, args Args) (map[string]any, error) {
	path, err := args.String("path", false)
	if err != nil {
		return nil, err
	}

	accepted, err := g.binding.Set(path)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Project path set", "path", accepted)
	return map[string]any{
		"path":    accepted,
		"message": fmt.Sprintf("Project path set to: %s", accepted),
	}, nil
}

func (g *Gateway) getStructure(_ context.Context, _ Args) (map[string]any, error) {
	root, err := g.binding.Require()
	if err != nil {
		return nil, err
	}
	listing, err := explorer.ListStructure(root)
	if err != nil {
		return nil, err
	}
	return map[string]any{"structure": listing}, nil
}

func (g *Gateway) listScenes(_ context.Context, _ Args) (map[string]any, error) {
	root, err := g.binding.Require()
	if err != nil {
		return nil, err
	}
	scenes, err := explorer.FindBySuffix(root, explorer.SceneSuffix)
	if err != nil {
		return nil, err
	}
	return map[string]any{"scenes": scenes}, nil
}

func (g *Gateway) listScripts(_ context.Context, _ Args) (map[string]any, error) {
	root, err := g.binding.Require()
	if err != nil {
		return nil, err
	}
	found, err := explorer.FindBySuffix(root, explorer.ScriptSuffix)
	if err != nil {
		return nil, err
	}
	return map[string]any{"scripts": found}, nil
}

// createScript and analyzeScene check the binding before their arguments, so
// an unbound call always reports NoProjectBound.
func (g *Gateway) createScript(_ context.Context, args Args) (map[string]any, error) {
	root, err := g.binding.Require()
	if err != nil {
		return nil, err
	}

	filename, err := args.String("filename", true)
	if err != nil {
		return nil, err
	}
	content, err := args.String("content", false)
	if err != nil {
		return nil, err
	}
	dir, err := args.String("path", false)
	if err != nil {
		return nil, err
	}

	written, err := scripts.Create(root, dir, filename, content)
	if err != nil {
		return nil, err
	}

	g.logger.Info("Created GDScript file", "path", written)
	return map[string]any{
		"message": fmt.Sprintf("GDScript file created: %s", written),
		"path":    written,
	}, nil
}

func (g *Gateway) runCommand(ctx context.Context, args Args) (map[string]any, error) {
	command, err := args.String("command", true)
	if err != nil {
		return nil, err
	}
	extra, err := args.Strings("args")
	if err != nil {
		return nil, err
	}

	res, err := g.runner.Run(ctx, command, extra, g.binding.Current())
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"command":     res.Command,
		"return_code": res.ReturnCode,
		"stdout":      res.Stdout,
		"stderr":      res.Stderr,
	}, nil
}

func (g *Gateway) analyzeScene(_ context.Context, args Args) (map[string]any, error) {
	root, err := g.binding.Require()
	if err != nil {
		return nil, err
	}

	scenePath, err := args.String("scene_path", true)
	if err != nil {
		return nil, err
	}

	analysis, err := scene.Analyze(root, scenePath)
	if err != nil {
		return nil, err
	}
	return map[string]any{"analysis": analysis}, nil
}

func (g *Gateway) relayToEngine(ctx context.Context, args Args) (map[string]any, error) {
	endpoint, err := args.String("endpoint", false)
	if err != nil {
		return nil, err
	}
	if endpoint != "" {
		if err := validation.Endpoint(endpoint); err != nil {
			return nil, apperr.Wrap(apperr.MalformedInput, err, "invalid endpoint")
		}
	}
	port, err := args.Int("port")
	if err != nil {
		return nil, err
	}
	if port != 0 {
		if err := validation.Port(port); err != nil {
			return nil, apperr.Wrap(apperr.MalformedInput, err, "invalid port")
		}
	}
	data, err := args.Value("data")
	if err != nil {
		return nil, err
	}

	res, err := g.relay.Send(ctx, endpoint, data, port)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"status": res.Status,
		"body":   res.Body,
	}, nil
}

// receiveFromEngine acknowledges a payload pushed by the game. The type only
// selects the acknowledgement text.
func (g *Gateway) receiveFromEngine(_ context.Context, args Args) (map[string]any, error) {
	kind, _ := args["type"].(string)
	g.logger.Info("Received from Godot", "type", kind, "fields", len(args))

	payload := map[string]any{"received": true}
	switch kind {
	case "game_event":
		payload["message"] = "Game event processed"
	case "player_action":
		payload["message"] = "Player action processed"
	case "ai_request":
		payload["ai_response"] = "AI processing not yet implemented"
	default:
		payload["message"] = "Data received"
		if kind != "" {
			payload["type"] = kind
		}
	}
	return payload, nil
}
