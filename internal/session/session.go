package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"notesapp/internal/logging"
	"notesapp/internal/types"
)

const (
	DefaultLoginDelay = 300 * time.Millisecond
	tokenPrefix       = "fake-token-"
)

const missingCredentialsMessage = "Please enter both username and password."

// Store persists the current session. Saving nil removes the entry.
type Store interface {
	Load(ctx context.Context) (*types.Session, error)
	Save(ctx context.Context, session *types.Session) error
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError wraps a persistence failure. The manager logs these and
// carries on with its in-memory state.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("session storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Manager owns the simulated login state. Any non-empty credentials
// succeed after a short artificial delay.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	logger  logging.Logger
	delay   time.Duration
	now     func() time.Time
	sleep   func(ctx context.Context, d time.Duration) error
	current *types.Session
}

type Option func(*Manager)

func WithLogger(logger logging.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithLoginDelay(delay time.Duration) Option {
	return func(m *Manager) {
		if delay >= 0 {
			m.delay = delay
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.Nop(),
		delay:  DefaultLoginDelay,
		now:    time.Now,
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Login(ctx context.Context, username, password string) (*types.Session, error) {
	if err := m.sleep(ctx, m.delay); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, &ValidationError{Message: missingCredentialsMessage}
	}
	now := m.now()
	session := &types.Session{
		Username:    username,
		DisplayName: username,
		Token:       tokenPrefix + base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%d", username, now.UnixMilli()))),
		LoggedInAt:  now,
	}
	m.mu.Lock()
	m.current = session
	m.mu.Unlock()
	m.Persist(ctx, session)
	m.logger.Info("logged in", logging.F("user", username))
	return session.Clone(), nil
}

func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	prev := m.current
	m.current = nil
	m.mu.Unlock()
	m.Persist(ctx, nil)
	if prev != nil {
		m.logger.Info("logged out", logging.F("user", prev.Username))
	}
}

// Restore loads the persisted session. Missing, unreadable or incomplete
// entries leave the manager logged out.
func (m *Manager) Restore(ctx context.Context) *types.Session {
	var restored *types.Session
	if m.store != nil {
		session, err := m.store.Load(ctx)
		switch {
		case err != nil:
			m.logger.Warn("session restore failed", logging.Err(&StorageError{Op: "load", Err: err}))
		case session == nil:
		case strings.TrimSpace(session.Username) == "":
			m.logger.Debug("stored session has no username")
		default:
			restored = session
		}
	}
	m.mu.Lock()
	m.current = restored
	m.mu.Unlock()
	return restored.Clone()
}

// Persist writes the session, or removes it when nil. Failures are logged
// and swallowed.
func (m *Manager) Persist(ctx context.Context, session *types.Session) {
	if m.store == nil {
		return
	}
	op := "save"
	if session == nil {
		op = "clear"
	}
	if err := m.store.Save(ctx, session); err != nil {
		m.logger.Warn("session persist failed", logging.Err(&StorageError{Op: op, Err: err}))
	}
}

func (m *Manager) Current() *types.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Clone()
}

func (m *Manager) LoggedIn() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
