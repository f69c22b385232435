package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"notesapp/internal/types"
)

func newTestRepositories(t *testing.T) map[string]Repository {
	t.Helper()
	dir := t.TempDir()
	bboltRepo, err := NewBboltRepository(filepath.Join(dir, "notes.db"))
	if err != nil {
		t.Fatalf("NewBboltRepository: %v", err)
	}
	t.Cleanup(func() { _ = bboltRepo.Close() })
	return map[string]Repository{
		RepositoryBackendBbolt: bboltRepo,
		RepositoryBackendFile:  NewFileRepository(RepositoryPaths{NotesPath: filepath.Join(dir, "notes.json")}),
	}
}

func TestNoteStoreListEmpty(t *testing.T) {
	for backend, repo := range newTestRepositories(t) {
		notes, err := repo.Notes().List(context.Background())
		if err != nil {
			t.Fatalf("%s list: %v", backend, err)
		}
		if len(notes) != 0 {
			t.Fatalf("%s: expected empty notes, got %d", backend, len(notes))
		}
	}
}

func TestNoteStoreCRUD(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range newTestRepositories(t) {
		notes := repo.Notes()

		created, err := notes.Create(ctx, types.Note{Title: "T", Category: "Work", Tags: []string{"a", "a"}})
		if err != nil {
			t.Fatalf("%s create: %v", backend, err)
		}
		if created.ID == "" {
			t.Fatalf("%s: expected id", backend)
		}
		if created.CreatedAt == nil || created.UpdatedAt == nil {
			t.Fatalf("%s: expected timestamps", backend)
		}
		if len(created.Tags) != 2 {
			t.Fatalf("%s: duplicate tags must be kept, got %v", backend, created.Tags)
		}

		got, ok, err := notes.Get(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("%s get: ok=%v err=%v", backend, ok, err)
		}
		if got.Title != "T" || got.Category != "Work" {
			t.Fatalf("%s: unexpected note %#v", backend, got)
		}

		updated, err := notes.Update(ctx, created.ID, types.Note{ID: "spoofed", Title: "T2", Content: "body"})
		if err != nil {
			t.Fatalf("%s update: %v", backend, err)
		}
		if updated.ID != created.ID {
			t.Fatalf("%s: update must keep id, got %q", backend, updated.ID)
		}
		if !updated.CreatedAt.Equal(*created.CreatedAt) {
			t.Fatalf("%s: update must keep createdAt", backend)
		}
		if updated.Category != "" || len(updated.Tags) != 0 || updated.Tags == nil {
			t.Fatalf("%s: update is a full replacement, got %#v", backend, updated)
		}

		if _, err := notes.Update(ctx, "missing", types.Note{Title: "x"}); !errors.Is(err, ErrNoteNotFound) {
			t.Fatalf("%s: expected ErrNoteNotFound, got %v", backend, err)
		}
		if err := notes.Delete(ctx, created.ID); err != nil {
			t.Fatalf("%s delete: %v", backend, err)
		}
		if err := notes.Delete(ctx, created.ID); !errors.Is(err, ErrNoteNotFound) {
			t.Fatalf("%s: expected ErrNoteNotFound on second delete, got %v", backend, err)
		}
	}
}

func TestNoteStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()

	file := NewFileNoteStore(filepath.Join(dir, "notes.json"))
	tick := 0
	file.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	for _, title := range []string{"first", "second", "third"} {
		if _, err := file.Create(ctx, types.Note{Title: title}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	notes, err := file.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 3 || notes[0].Title != "third" || notes[2].Title != "first" {
		t.Fatalf("unexpected order: %v", titles(notes))
	}
}

func TestOpenRepositoryRejectsUnknownBackend(t *testing.T) {
	if _, err := OpenRepository("postgres", RepositoryPaths{}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	repo, err := OpenRepository("file", RepositoryPaths{NotesPath: filepath.Join(t.TempDir(), "n.json")})
	if err != nil {
		t.Fatalf("OpenRepository file: %v", err)
	}
	if repo.Backend() != RepositoryBackendFile {
		t.Fatalf("unexpected backend %q", repo.Backend())
	}
}

func titles(notes []types.Note) []string {
	out := make([]string, 0, len(notes))
	for _, note := range notes {
		out = append(out, note.Title)
	}
	return out
}

func TestFileNoteStoreTreatsEmptyFileAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	if err := os.WriteFile(path, []byte("\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	notes, err := NewFileNoteStore(path).List(context.Background())
	if err != nil || len(notes) != 0 {
		t.Fatalf("expected empty list, got %v %v", notes, err)
	}

	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileNoteStore(path).List(context.Background()); err == nil {
		t.Fatalf("expected decode error for corrupt file")
	}
}
