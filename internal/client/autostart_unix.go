//go:build !windows

package client

import (
	"os/exec"
	"syscall"
)

// detachProcess puts the daemon in its own session so it outlives the UI.
func detachProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
