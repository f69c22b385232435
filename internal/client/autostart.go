package client

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"notesapp/internal/config"
)

var startDaemon = StartBackgroundDaemon

// StartBackgroundDaemon re-executes the current binary as a detached
// daemon whose output goes to the daemon log.
func StartBackgroundDaemon() error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}

	cmd := exec.Command(exe, "daemon", "--background")
	detachProcess(cmd)

	var out io.Writer = io.Discard
	var logFile *os.File
	if logPath, err := config.DaemonLogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err == nil {
			if file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
				out = file
				logFile = file
			}
		}
	}
	cmd.Stdout = out
	cmd.Stderr = out

	err = cmd.Start()
	if logFile != nil {
		_ = logFile.Close()
	}
	if err == nil {
		_ = cmd.Process.Release()
	}
	return err
}
