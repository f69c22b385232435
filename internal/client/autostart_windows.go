//go:build windows

package client

import "os/exec"

func detachProcess(cmd *exec.Cmd) {}
