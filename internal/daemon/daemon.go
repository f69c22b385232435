package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"notesapp/internal/logging"
	"notesapp/internal/store"
)

// Daemon serves the notes HTTP API backed by a note repository.
type Daemon struct {
	addr   string
	repo   store.Repository
	logger logging.Logger
	server *http.Server
}

func New(addr string, repo store.Repository, logger logging.Logger) *Daemon {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Daemon{addr: addr, repo: repo, logger: logger}
}

func (d *Daemon) Handler() http.Handler {
	var notes store.NoteStore
	if d.repo != nil {
		notes = d.repo.Notes()
	}
	api := &API{Notes: NewNoteService(notes), Logger: d.logger}
	mux := http.NewServeMux()
	api.RegisterRoutes(mux)
	return LoggingMiddleware(d.logger, mux)
}

func (d *Daemon) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", d.addr)
	if err != nil {
		return err
	}
	return d.Serve(ctx, listener)
}

// Serve runs until ctx is canceled, then shuts the server down gracefully.
func (d *Daemon) Serve(ctx context.Context, listener net.Listener) error {
	d.server = &http.Server{
		Handler:           d.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		backend := ""
		if d.repo != nil {
			backend = d.repo.Backend()
		}
		d.logger.Info("daemon listening",
			logging.F("addr", "http://"+listener.Addr().String()),
			logging.F("backend", backend),
		)
		errCh <- d.server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		d.logger.Info("daemon stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
