package main

import (
	"context"
	"flag"

	"notesapp/internal/app"
	"notesapp/internal/logging"
	"notesapp/internal/notes"
)

type UICommand struct {
	wiring commandWiring
}

func NewUICommand(wiring commandWiring) *UICommand {
	return &UICommand{wiring: wiring}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.wiring.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.wiring.loadConfig()
	if err != nil {
		return err
	}
	logger, logCloser := c.wiring.openUILog(cfg)
	defer logCloser.Close()

	ctx := context.Background()
	sessions, closer, err := c.wiring.openSessions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closer.Close()

	remote, err := c.wiring.newRemote(ctx, cfg, sessionToken(sessions))
	if err != nil {
		return err
	}
	logger.Info("ui starting", logging.F("remote", cfg.RemoteBaseURL()))
	return c.wiring.runUI(ctx, app.Options{
		Sessions:       sessions,
		Notes:          notes.NewSynchronizer(remote, logger),
		Logger:         logger,
		SearchDebounce: cfg.SearchDebounce(),
	})
}
