package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"notesapp/internal/types"
)

var ErrNoteNotFound = errors.New("note not found")

const noteSchemaVersion = 1

type NoteStore interface {
	List(ctx context.Context) ([]types.Note, error)
	Get(ctx context.Context, id string) (types.Note, bool, error)
	Create(ctx context.Context, note types.Note) (types.Note, error)
	Update(ctx context.Context, id string, note types.Note) (types.Note, error)
	Delete(ctx context.Context, id string) error
}

type FileNoteStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

type noteFile struct {
	Version int          `json:"version"`
	Notes   []types.Note `json:"notes"`
}

func NewFileNoteStore(path string) *FileNoteStore {
	return &FileNoteStore{path: path, now: time.Now}
}

func (s *FileNoteStore) List(ctx context.Context) ([]types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}
	out := types.CloneNotes(file.Notes)
	sortNewestFirst(out)
	return out, nil
}

func (s *FileNoteStore) Get(ctx context.Context, id string) (types.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return types.Note{}, false, err
	}
	for _, note := range file.Notes {
		if note.ID == id {
			return note.Clone(), true, nil
		}
	}
	return types.Note{}, false, nil
}

func (s *FileNoteStore) Create(ctx context.Context, note types.Note) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return types.Note{}, err
	}
	created := normalizeNote(note, nil, s.now())
	file.Notes = append(file.Notes, created)
	if err := s.save(file); err != nil {
		return types.Note{}, err
	}
	return created.Clone(), nil
}

func (s *FileNoteStore) Update(ctx context.Context, id string, note types.Note) (types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return types.Note{}, err
	}
	for i, existing := range file.Notes {
		if existing.ID != id {
			continue
		}
		updated := normalizeNote(note, &existing, s.now())
		file.Notes[i] = updated
		if err := s.save(file); err != nil {
			return types.Note{}, err
		}
		return updated.Clone(), nil
	}
	return types.Note{}, ErrNoteNotFound
}

func (s *FileNoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}
	filtered := file.Notes[:0]
	found := false
	for _, note := range file.Notes {
		if note.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, note)
	}
	if !found {
		return ErrNoteNotFound
	}
	file.Notes = filtered
	return s.save(file)
}

// load reads the note file. A missing or empty file is an empty collection.
func (s *FileNoteStore) load() (*noteFile, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(bytes.TrimSpace(data)) == 0) {
		return newNoteFile(), nil
	}
	if err != nil {
		return nil, err
	}
	file := newNoteFile()
	if err := json.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	if file.Notes == nil {
		file.Notes = []types.Note{}
	}
	return file, nil
}

// save replaces the note file through a rename so readers never see a
// partial write.
func (s *FileNoteStore) save(file *noteFile) error {
	file.Version = noteSchemaVersion
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func newNoteFile() *noteFile {
	return &noteFile{Version: noteSchemaVersion, Notes: []types.Note{}}
}

// normalizeNote applies server-side ownership of id and timestamps. An
// existing note keeps its id and creation time; the update time always moves.
func normalizeNote(note types.Note, existing *types.Note, now time.Time) types.Note {
	now = now.UTC()
	normalized := note.Normalized()
	if existing != nil {
		normalized.ID = existing.ID
		normalized.CreatedAt = existing.Clone().CreatedAt
	} else {
		normalized.ID = uuid.NewString()
		normalized.CreatedAt = &now
	}
	if normalized.CreatedAt == nil {
		normalized.CreatedAt = &now
	}
	updated := now
	normalized.UpdatedAt = &updated
	return normalized
}

func sortNewestFirst(notes []types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := createdAt(notes[i]), createdAt(notes[j])
		if a.Equal(b) {
			return notes[i].ID > notes[j].ID
		}
		return a.After(b)
	})
}

func createdAt(note types.Note) time.Time {
	if note.CreatedAt == nil {
		return time.Time{}
	}
	return *note.CreatedAt
}
