package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"notesapp/internal/config"
	"notesapp/internal/daemon"
	"notesapp/internal/logging"
	"notesapp/internal/store"
)

type DaemonCommand struct {
	stderr    io.Writer
	runDaemon func(background bool) error
}

func NewDaemonCommand(stderr io.Writer, runDaemon func(background bool) error) *DaemonCommand {
	return &DaemonCommand{
		stderr:    stderr,
		runDaemon: runDaemon,
	}
}

func (c *DaemonCommand) Run(args []string) error {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	background := fs.Bool("background", false, "run in background (logs to file)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.runDaemon(*background)
}

func runDaemonProcess(stderr io.Writer, background bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level := logging.ParseLevel(cfg.LogLevel())
	logger := logging.New(stderr, level)
	if background {
		if path, err := config.DaemonLogPath(); err == nil {
			if fileLogger, closer, err := logging.OpenFile(path, level); err == nil {
				logger = fileLogger
				defer closer.Close()
			}
		}
	}

	notesPath, err := config.NotesFilePath()
	if err != nil {
		return err
	}
	dbPath, err := config.NotesDBPath()
	if err != nil {
		return err
	}
	repo, err := store.OpenRepository(cfg.StorageBackend(), store.RepositoryPaths{
		NotesPath: notesPath,
		DBPath:    dbPath,
	})
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := cfg.DaemonAddress()
	logger.Info("daemon starting", logging.F("addr", addr), logging.F("backend", repo.Backend()))
	return daemon.New(addr, repo, logger).Run(ctx)
}
