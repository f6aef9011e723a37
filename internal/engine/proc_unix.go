//go:build unix

package engine

import (
	"os/exec"
	"syscall"
)

// isolateProcessGroup puts the child in its own process group and makes
// cancellation SIGKILL the whole group (negative pid).
func isolateProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
