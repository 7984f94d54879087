//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; the process may already be gone.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}

// setProcessGroup starts cmd in its own process group so that
// KillProcessGroup reaches the children it spawns.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
