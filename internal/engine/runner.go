// Package engine locates the Godot binary and runs it as a bounded
// subprocess.
//
// Every invocation runs in its own process group. When the timeout expires or
// the caller's context is cancelled the whole group is killed, so editor
// helpers spawned by Godot cannot outlive the call or hold the output pipes
// open.
package engine

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"godotmcp/internal/apperr"
	"godotmcp/internal/logging"
)

// DefaultTimeout bounds a single engine invocation.
const DefaultTimeout = 30 * time.Second

// waitDelay is how long Wait keeps reading the pipes after the kill.
const waitDelay = 2 * time.Second

// Result is the outcome of a completed engine run. A non-zero ReturnCode is
// still a completed run.
type Result struct {
	Command    string `json:"command"`
	ReturnCode int    `json:"return_code"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
}

// Runner finds and executes the Godot command-line binary.
type Runner struct {
	// Names are the candidate binary names, tried in order.
	Names []string

	// Timeout bounds each Run. Zero means DefaultTimeout.
	Timeout time.Duration

	// LookPath resolves a name on the search path. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)

	logger *logging.AppLogger
}

// NewRunner creates a Runner for the given candidate names.
func NewRunner(names []string, timeout time.Duration, logger *logging.AppLogger) *Runner {
	if logger == nil {
		logger = logging.GetDefault()
	}
	return &Runner{
		Names:    append([]string(nil), names...),
		Timeout:  timeout,
		LookPath: exec.LookPath,
		logger:   logger,
	}
}

// Locate returns the path of the first candidate found on the search path.
func (r *Runner) Locate() (string, error) {
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, name := range r.Names {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}
	return "", apperr.New(apperr.ExecutableNotFound,
		"Godot executable not found in PATH (tried %s)", strings.Join(r.Names, ", "))
}

// Run executes `<godot> command args... [--path root]` and waits for it.
// An empty root omits the --path pair. On timeout the process group is
// killed, output is discarded and an apperr.Timeout is returned.
func (r *Runner) Run(ctx context.Context, command string, args []string, root string) (*Result, error) {
	exe, err := r.Locate()
	if err != nil {
		return nil, err
	}

	argv := make([]string, 0, len(args)+3)
	argv = append(argv, command)
	argv = append(argv, args...)
	if root != "" {
		argv = append(argv, "--path", root)
	}
	display := strings.Join(append([]string{exe}, argv...), " ")

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(runCtx, exe, argv...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	isolateProcessGroup(cmd)

	start := time.Now()
	r.logger.Debug("Running engine command", "command", display, "timeout", timeout)
	err = cmd.Run()
	r.logger.LogPerformance("engine run", start)

	if runCtx.Err() != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			r.logger.Warn("Engine command timed out", "command", display, "timeout", timeout)
			return nil, apperr.New(apperr.Timeout, "command timed out after %s", timeout)
		}
		return nil, apperr.Wrap(apperr.Timeout, ctx.Err(), "command cancelled")
	}

	result := &Result{
		Command: display,
		Stdout:  strings.ToValidUTF8(stdout.String(), "\uFFFD"),
		Stderr:  strings.ToValidUTF8(stderr.String(), "\uFFFD"),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, apperr.Wrap(apperr.IOError, err, "failed to start %s", exe)
		}
		result.ReturnCode = exitErr.ExitCode()
	}

	return result, nil
}
