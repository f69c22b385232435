package main

import (
	"context"
	"io"
	"os"

	"notesapp/internal/app"
	"notesapp/internal/config"
	"notesapp/internal/logging"
	"notesapp/internal/notes"
	"notesapp/internal/session"
)

type commandRunner interface {
	Run(args []string) error
}

// sessionOpener returns a restored session manager and a closer for the
// storage behind it.
type sessionOpener func(ctx context.Context, cfg config.Config, logger logging.Logger) (*session.Manager, io.Closer, error)

// remoteFactory builds the notes service client. token is read on every
// request.
type remoteFactory func(ctx context.Context, cfg config.Config, token func() string) (notes.Remote, error)

type commandWiring struct {
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
	loadConfig   func() (config.Config, error)
	openSessions sessionOpener
	newRemote    remoteFactory
	readPassword func(prompt string) (string, error)
	runDaemon    func(background bool) error
	runUI        func(ctx context.Context, opts app.Options) error
	openUILog    func(cfg config.Config) (logging.Logger, io.Closer)
}

func defaultCommandWiring(stdin io.Reader, stdout, stderr io.Writer) commandWiring {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdin:        stdin,
		stdout:       stdout,
		stderr:       stderr,
		loadConfig:   config.Load,
		openSessions: openSessionManager,
		newRemote:    newClientRemote,
		readPassword: func(prompt string) (string, error) {
			return promptPassword(stdin, stderr, prompt)
		},
		runDaemon: func(background bool) error {
			return runDaemonProcess(stderr, background)
		},
		runUI:     app.Run,
		openUILog: openUILog,
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":     NewUICommand(wiring),
		"daemon": NewDaemonCommand(wiring.stderr, wiring.runDaemon),
		"login":  NewLoginCommand(wiring),
		"logout": NewLogoutCommand(wiring),
		"whoami": NewWhoamiCommand(wiring),
		"ls":     NewListCommand(wiring),
		"add":    NewAddCommand(wiring),
		"rm":     NewRemoveCommand(wiring),
		"config": NewConfigCommand(wiring.stdout, wiring.stderr, wiring.loadConfig),
	}
}
