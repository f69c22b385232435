package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"notesapp/internal/client"
	"notesapp/internal/config"
	"notesapp/internal/logging"
	"notesapp/internal/notes"
	"notesapp/internal/projection"
	"notesapp/internal/session"
	"notesapp/internal/store"
	"notesapp/internal/types"
)

const listTitleWidth = 40

var errNotLoggedIn = errors.New("not logged in; run `notes login` first")

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

func openSessionManager(ctx context.Context, cfg config.Config, logger logging.Logger) (*session.Manager, io.Closer, error) {
	path, err := config.SessionDBPath()
	if err != nil {
		return nil, nil, err
	}
	kv, err := store.OpenBboltKV(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}
	manager := session.NewManager(
		store.NewSessionStore(kv),
		session.WithLoginDelay(cfg.LoginDelay()),
		session.WithLogger(logger),
	)
	manager.Restore(ctx)
	return manager, kv, nil
}

// newClientRemote starts the local daemon on demand when the client points
// at it.
func newClientRemote(ctx context.Context, cfg config.Config, token func() string) (notes.Remote, error) {
	c := client.New(cfg.RemoteBaseURL(), client.WithTokenSource(token))
	if c.BaseURL() == cfg.DaemonBaseURL() {
		if err := c.EnsureDaemon(ctx); err != nil {
			return nil, fmt.Errorf("start notes daemon: %w", err)
		}
	}
	return c, nil
}

// sessionToken follows the manager's current session.
func sessionToken(sessions *session.Manager) func() string {
	return func() string {
		if current := sessions.Current(); current != nil {
			return current.Token
		}
		return ""
	}
}

func openUILog(cfg config.Config) (logging.Logger, io.Closer) {
	path, err := config.UILogPath()
	if err != nil {
		return logging.Nop(), io.NopCloser(nil)
	}
	logger, closer, err := logging.OpenFile(path, logging.ParseLevel(cfg.LogLevel()))
	if err != nil {
		return logging.Nop(), io.NopCloser(nil)
	}
	return logger, closer
}

// cliLogger keeps one-shot commands quiet unless debug logging is configured.
func cliLogger(cfg config.Config, stderr io.Writer) logging.Logger {
	if logging.ParseLevel(cfg.LogLevel()) != logging.Debug {
		return logging.Nop()
	}
	return logging.New(stderr, logging.Debug)
}

func promptPassword(stdin io.Reader, stderr io.Writer, prompt string) (string, error) {
	if file, ok := stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(stderr, prompt)
		raw, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(stderr)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// noteSession bundles what the note commands need for one invocation.
type noteSession struct {
	sessions *session.Manager
	notes    *notes.Synchronizer
	closer   io.Closer
}

func (s *noteSession) Close() error {
	return s.closer.Close()
}

func openNoteSession(ctx context.Context, wiring commandWiring) (*noteSession, error) {
	cfg, err := wiring.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := cliLogger(cfg, wiring.stderr)
	sessions, closer, err := wiring.openSessions(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	current := sessions.Current()
	if current == nil {
		_ = closer.Close()
		return nil, errNotLoggedIn
	}
	remote, err := wiring.newRemote(ctx, cfg, sessionToken(sessions))
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	return &noteSession{
		sessions: sessions,
		notes:    notes.NewSynchronizer(remote, logger),
		closer:   closer,
	}, nil
}

func printNotes(output io.Writer, list []types.Note) {
	if len(list) == 0 {
		fmt.Fprintln(output, projection.EmptyListText)
		return
	}
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tCATEGORY\tUPDATED\tTITLE\tTAGS")
	for _, note := range list {
		title := runewidth.Truncate(projection.DisplayTitle(note), listTitleWidth, "…")
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			note.ID,
			projection.DisplayCategory(note),
			projection.DisplayTime(note),
			title,
			strings.Join(projection.DisplayTags(note), " "),
		)
	}
	_ = writer.Flush()
}
