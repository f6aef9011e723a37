//go:build !unix

package engine

import "os/exec"

// isolateProcessGroup falls back to killing the direct child.
func isolateProcessGroup(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}
