package daemon

import (
	"context"
	"errors"
	"strings"

	"notesapp/internal/store"
	"notesapp/internal/types"
)

// NoteService applies the API rules over a note store: clients never pick
// ids, and ids on the path are required.
type NoteService struct {
	notes store.NoteStore
}

func NewNoteService(notes store.NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) List(ctx context.Context) ([]types.Note, error) {
	if s.notes == nil {
		return nil, errNoStore
	}
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, storageFailure("list", err)
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, note types.Note) (types.Note, error) {
	if s.notes == nil {
		return types.Note{}, errNoStore
	}
	note.ID = ""
	created, err := s.notes.Create(ctx, note)
	if err != nil {
		return types.Note{}, storageFailure("create", err)
	}
	return created, nil
}

func (s *NoteService) Update(ctx context.Context, id string, note types.Note) (types.Note, error) {
	id, err := s.target(id)
	if err != nil {
		return types.Note{}, err
	}
	updated, err := s.notes.Update(ctx, id, note)
	if err != nil {
		return types.Note{}, classify("update", err)
	}
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	id, err := s.target(id)
	if err != nil {
		return err
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		return classify("delete", err)
	}
	return nil
}

func (s *NoteService) target(id string) (string, error) {
	if s.notes == nil {
		return "", errNoStore
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", badRequest("note id is required")
	}
	return id, nil
}

func classify(op string, err error) error {
	if errors.Is(err, store.ErrNoteNotFound) {
		return noteNotFound(err)
	}
	return storageFailure(op, err)
}
