package notes

import (
	"context"
	"errors"
	"strings"
	"sync"

	"notesapp/internal/logging"
	"notesapp/internal/types"
)

const DraftTitle = "Untitled note"

var (
	ErrMutationInFlight = errors.New("another change to this note is still in progress")
	ErrEmptyResponse    = errors.New("notes service returned no note")
	ErrMissingID        = errors.New("note id is required")
)

// Remote is the notes service as seen by the synchronizer.
type Remote interface {
	ListNotes(ctx context.Context) ([]types.Note, error)
	CreateNote(ctx context.Context, draft types.Note) (*types.Note, error)
	UpdateNote(ctx context.Context, id string, note types.Note) (*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// Synchronizer owns the local note collection and category set. Local state
// changes only after the remote store confirms a mutation.
type Synchronizer struct {
	remote Remote
	logger logging.Logger

	mu         sync.RWMutex
	notes      []types.Note
	categories *CategorySet
	inFlight   map[string]struct{}
	revision   uint64
	subs       map[chan uint64]struct{}
}

func NewSynchronizer(remote Remote, logger logging.Logger) *Synchronizer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Synchronizer{
		remote:     remote,
		logger:     logger,
		notes:      []types.Note{},
		categories: NewCategorySet(DefaultCategories...),
		inFlight:   map[string]struct{}{},
		subs:       map[chan uint64]struct{}{},
	}
}

// Load replaces the collection and rebuilds the category set from scratch.
// Overlapping loads are not coalesced; the last one to finish wins.
func (s *Synchronizer) Load(ctx context.Context) error {
	notes, err := s.remote.ListNotes(ctx)
	if err != nil {
		s.logger.Warn("notes load failed", logging.Err(err))
		return err
	}
	loaded := types.CloneNotes(notes)
	categories := DeriveCategories(loaded)

	s.mu.Lock()
	s.notes = loaded
	s.categories = categories
	rev := s.bumpLocked()
	s.mu.Unlock()

	s.logger.Debug("notes loaded", logging.F("count", len(loaded)), logging.F("revision", rev))
	return nil
}

// Create sends draft to the remote store and prepends the confirmed note.
func (s *Synchronizer) Create(ctx context.Context, draft types.Note) (types.Note, error) {
	created, err := s.remote.CreateNote(ctx, draft.Normalized())
	if err != nil {
		s.logger.Warn("note create failed", logging.Err(err))
		return types.Note{}, err
	}
	if created == nil || strings.TrimSpace(created.ID) == "" {
		s.logger.Warn("note create returned no note")
		return types.Note{}, ErrEmptyResponse
	}
	note := created.Normalized()

	s.mu.Lock()
	s.notes = append([]types.Note{note.Clone()}, s.notes...)
	s.categories.Add(note.Category)
	rev := s.bumpLocked()
	s.mu.Unlock()

	s.logger.Debug("note created", logging.F("id", note.ID), logging.F("revision", rev))
	return note, nil
}

// Save replaces the note with the same id, keeping its position. A service
// that confirms without a body leaves the sent note as the new value.
func (s *Synchronizer) Save(ctx context.Context, note types.Note) (types.Note, error) {
	id := strings.TrimSpace(note.ID)
	if id == "" {
		return types.Note{}, ErrMissingID
	}
	if err := s.begin(id); err != nil {
		return types.Note{}, err
	}
	defer s.end(id)

	sent := note.Normalized()
	updated, err := s.remote.UpdateNote(ctx, id, sent)
	if err != nil {
		s.logger.Warn("note save failed", logging.F("id", id), logging.Err(err))
		return types.Note{}, err
	}
	saved := sent
	if updated != nil {
		saved = updated.Normalized()
	}
	if saved.ID == "" {
		saved.ID = id
	}

	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i] = saved.Clone()
			break
		}
	}
	s.categories.Add(saved.Category)
	rev := s.bumpLocked()
	s.mu.Unlock()

	s.logger.Debug("note saved", logging.F("id", id), logging.F("revision", rev))
	return saved, nil
}

// Remove deletes the note remotely and then locally. The category set is
// left as is even when the last note of a category goes away.
func (s *Synchronizer) Remove(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingID
	}
	if err := s.begin(id); err != nil {
		return err
	}
	defer s.end(id)

	if err := s.remote.DeleteNote(ctx, id); err != nil {
		s.logger.Warn("note remove failed", logging.F("id", id), logging.Err(err))
		return err
	}

	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
			break
		}
	}
	rev := s.bumpLocked()
	s.mu.Unlock()

	s.logger.Debug("note removed", logging.F("id", id), logging.F("revision", rev))
	return nil
}

// NewDraft returns an unsaved note filed under the active category, or
// Personal when every category is shown.
func (s *Synchronizer) NewDraft(activeCategory string) types.Note {
	return NewDraft(activeCategory)
}

func NewDraft(activeCategory string) types.Note {
	category := strings.TrimSpace(activeCategory)
	if category == "" || category == types.CategoryAll {
		category = types.CategoryPersonal
	}
	return types.Note{Title: DraftTitle, Category: category, Tags: []string{}}
}

func (s *Synchronizer) Notes() []types.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.CloneNotes(s.notes)
}

func (s *Synchronizer) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories.Values()
}

func (s *Synchronizer) Find(id string) (types.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, note := range s.notes {
		if note.ID == id {
			return note.Clone(), true
		}
	}
	return types.Note{}, false
}

func (s *Synchronizer) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Subscribe returns a channel that receives the latest revision after each
// change. Slow readers only see the newest value. The returned func stops
// delivery and closes the channel.
func (s *Synchronizer) Subscribe() (<-chan uint64, func()) {
	ch := make(chan uint64, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Synchronizer) begin(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return ErrMutationInFlight
	}
	s.inFlight[id] = struct{}{}
	return nil
}

func (s *Synchronizer) end(id string) {
	s.mu.Lock()
	delete(s.inFlight, id)
	s.mu.Unlock()
}

func (s *Synchronizer) bumpLocked() uint64 {
	s.revision++
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s.revision:
		default:
		}
	}
	return s.revision
}
