package session

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notesapp/internal/logging"
	"notesapp/internal/store"
	"notesapp/internal/types"
)

type memoryStore struct {
	session *types.Session
	loadErr error
	saveErr error
	saves   int
}

func (s *memoryStore) Load(context.Context) (*types.Session, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.session.Clone(), nil
}

func (s *memoryStore) Save(_ context.Context, session *types.Session) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.session = session.Clone()
	return nil
}

func newTestManager(st Store, opts ...Option) *Manager {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	opts = append([]Option{WithLoginDelay(0), WithClock(func() time.Time { return fixed })}, opts...)
	return NewManager(st, opts...)
}

func TestLoginBuildsSession(t *testing.T) {
	st := &memoryStore{}
	m := newTestManager(st)

	session, err := m.Login(context.Background(), "  alice ", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if session.Username != "alice" || session.DisplayName != "alice" {
		t.Fatalf("unexpected session %#v", session)
	}
	if !strings.HasPrefix(session.Token, "fake-token-") {
		t.Fatalf("unexpected token %q", session.Token)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(session.Token, "fake-token-"))
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	want := "alice:" + "1767323045000"
	if string(decoded) != want {
		t.Fatalf("expected token payload %q, got %q", want, decoded)
	}
	if !m.LoggedIn() || m.Current().Username != "alice" {
		t.Fatalf("expected logged in state")
	}
	if st.session == nil || st.session.Token != session.Token {
		t.Fatalf("expected session to be persisted, got %#v", st.session)
	}
}

func TestLoginRejectsBlankCredentials(t *testing.T) {
	cases := []struct{ user, pass string }{
		{"", "pw"},
		{"alice", "   "},
		{" ", ""},
	}
	for _, tc := range cases {
		st := &memoryStore{}
		m := newTestManager(st)
		_, err := m.Login(context.Background(), tc.user, tc.pass)
		var validation *ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("%q/%q: expected ValidationError, got %v", tc.user, tc.pass, err)
		}
		if validation.Message != "Please enter both username and password." {
			t.Fatalf("unexpected message %q", validation.Message)
		}
		if m.LoggedIn() || st.saves != 0 {
			t.Fatalf("failed login must not change state")
		}
	}
}

func TestLoginWaitsForDelay(t *testing.T) {
	m := NewManager(&memoryStore{})
	var waited time.Duration
	m.sleep = func(_ context.Context, d time.Duration) error {
		waited = d
		return nil
	}
	if _, err := m.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if waited != DefaultLoginDelay {
		t.Fatalf("expected delay %v, got %v", DefaultLoginDelay, waited)
	}
}

func TestLoginCanceledDuringDelay(t *testing.T) {
	m := newTestManager(&memoryStore{}, WithLoginDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Login(ctx, "a", "b"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if m.LoggedIn() {
		t.Fatalf("canceled login must leave the manager logged out")
	}
}

func TestLogoutClearsStorage(t *testing.T) {
	st := &memoryStore{}
	m := newTestManager(st)
	if _, err := m.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	m.Logout(context.Background())
	if m.LoggedIn() || m.Current() != nil {
		t.Fatalf("expected logged out")
	}
	if st.session != nil {
		t.Fatalf("expected persisted session to be removed")
	}
}

func TestRestore(t *testing.T) {
	stored := &types.Session{Username: "bob", Token: "fake-token-x", DisplayName: "bob"}
	m := newTestManager(&memoryStore{session: stored})
	restored := m.Restore(context.Background())
	if restored == nil || restored.Username != "bob" || !m.LoggedIn() {
		t.Fatalf("expected restored session, got %#v", restored)
	}
}

func TestRestoreWithoutUsernameIsLoggedOut(t *testing.T) {
	m := newTestManager(&memoryStore{session: &types.Session{Token: "t"}})
	if restored := m.Restore(context.Background()); restored != nil || m.LoggedIn() {
		t.Fatalf("expected logged out, got %#v", restored)
	}
}

func TestRestoreMalformedEntryIsLoggedOut(t *testing.T) {
	ctx := context.Background()
	kv, err := store.OpenBboltKV(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("OpenBboltKV: %v", err)
	}
	defer kv.Close()
	if err := kv.Put(ctx, store.SessionKey, []byte("not-json")); err != nil {
		t.Fatalf("put: %v", err)
	}

	var logs bytes.Buffer
	m := newTestManager(store.NewSessionStore(kv), WithLogger(logging.New(&logs, logging.Debug)))
	if restored := m.Restore(ctx); restored != nil || m.LoggedIn() {
		t.Fatalf("expected logged out, got %#v", restored)
	}
	if !strings.Contains(logs.String(), "session restore failed") {
		t.Fatalf("expected restore failure to be logged, got %q", logs.String())
	}
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	var logs bytes.Buffer
	st := &memoryStore{saveErr: errors.New("disk full")}
	m := newTestManager(st, WithLogger(logging.New(&logs, logging.Warn)))
	session, err := m.Login(context.Background(), "a", "b")
	if err != nil || session == nil {
		t.Fatalf("login must succeed despite storage failure: %v", err)
	}
	if !m.LoggedIn() {
		t.Fatalf("expected in-memory session")
	}
	if !strings.Contains(logs.String(), "disk full") {
		t.Fatalf("expected storage failure to be logged, got %q", logs.String())
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	m := newTestManager(&memoryStore{})
	if _, err := m.Login(context.Background(), "a", "b"); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	m.Current().Username = "mutated"
	if m.Current().Username != "a" {
		t.Fatalf("Current must return a copy")
	}
}
