package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"notesapp/internal/types"
)

var bucketNotes = []byte("notes")

type bboltRepository struct {
	db    *bolt.DB
	notes NoteStore
}

func NewBboltRepository(path string) (Repository, error) {
	db, err := openBolt(path)
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketNotes)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &bboltRepository{db: db, notes: &bboltNoteStore{db: db, now: time.Now}}, nil
}

func (r *bboltRepository) Notes() NoteStore {
	return r.notes
}

func (r *bboltRepository) Backend() string {
	return RepositoryBackendBbolt
}

func (r *bboltRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

type bboltNoteStore struct {
	db  *bolt.DB
	now func() time.Time
	mu  sync.Mutex
}

func (s *bboltNoteStore) List(ctx context.Context) ([]types.Note, error) {
	out := make([]types.Note, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var note types.Note
			if err := json.Unmarshal(v, &note); err != nil {
				return err
			}
			out = append(out, note.Normalized())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *bboltNoteStore) Get(ctx context.Context, id string) (types.Note, bool, error) {
	var (
		note types.Note
		ok   bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return nil
		}
		raw := b.Get([]byte(id))
		if len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, &note); err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return types.Note{}, false, err
	}
	return note.Normalized(), ok, nil
}

func (s *bboltNoteStore) Create(ctx context.Context, note types.Note) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	created := normalizeNote(note, nil, s.now())
	if err := s.put(created); err != nil {
		return types.Note{}, err
	}
	return created.Clone(), nil
}

func (s *bboltNoteStore) Update(ctx context.Context, id string, note types.Note) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok, err := s.Get(ctx, id)
	if err != nil {
		return types.Note{}, err
	}
	if !ok {
		return types.Note{}, ErrNoteNotFound
	}
	updated := normalizeNote(note, &existing, s.now())
	if err := s.put(updated); err != nil {
		return types.Note{}, err
	}
	return updated.Clone(), nil
}

func (s *bboltNoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		if b.Get([]byte(id)) == nil {
			return ErrNoteNotFound
		}
		return b.Delete([]byte(id))
	})
}

func (s *bboltNoteStore) put(note types.Note) error {
	raw, err := json.Marshal(note)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketNotes)
		if b == nil {
			return errors.New("notes bucket missing")
		}
		return b.Put([]byte(note.ID), raw)
	})
}
