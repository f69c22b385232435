package store

import (
	"context"
	"encoding/json"
	"errors"

	"notesapp/internal/types"
)

// SessionKey is the namespaced key holding the serialized session.
const SessionKey = "notesapp:user"

var ErrMalformedSession = errors.New("malformed session entry")

type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// Load returns nil, nil when no session is stored.
func (s *SessionStore) Load(ctx context.Context) (*types.Session, error) {
	raw, ok, err := s.kv.Get(ctx, SessionKey)
	if err != nil {
		return nil, err
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var session types.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Join(ErrMalformedSession, err)
	}
	return &session, nil
}

func (s *SessionStore) Save(ctx context.Context, session *types.Session) error {
	if session == nil {
		return s.Clear(ctx)
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, SessionKey, raw)
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, SessionKey)
}
