package notes

import (
	"context"
	"path/filepath"
	"testing"

	"notesapp/internal/session"
	"notesapp/internal/store"
	"notesapp/internal/types"
)

func TestLoginCreateRemoveFlow(t *testing.T) {
	ctx := context.Background()
	kv, err := store.OpenBboltKV(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("OpenBboltKV: %v", err)
	}
	defer kv.Close()

	sessions := session.NewManager(store.NewSessionStore(kv), session.WithLoginDelay(0))
	current, err := sessions.Login(ctx, "alice", "x")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if current.Username != "alice" {
		t.Fatalf("unexpected session %#v", current)
	}

	syncer := NewSynchronizer(&fakeRemote{}, nil)
	if err := syncer.Load(ctx); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	created, err := syncer.Create(ctx, types.Note{Title: "T", Content: "", Category: "Work", Tags: []string{}})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" || len(syncer.Notes()) != 1 {
		t.Fatalf("expected one note with an id, got %#v", syncer.Notes())
	}
	if !containsString(syncer.Categories(), "Work") {
		t.Fatalf("expected Work in categories, got %v", syncer.Categories())
	}

	if err := syncer.Remove(ctx, created.ID); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if len(syncer.Notes()) != 0 {
		t.Fatalf("expected empty collection")
	}
	if !containsString(syncer.Categories(), "Work") {
		t.Fatalf("Work must survive removal, got %v", syncer.Categories())
	}

	restored := session.NewManager(store.NewSessionStore(kv)).Restore(ctx)
	if restored == nil || restored.Username != "alice" {
		t.Fatalf("expected persisted session to restore, got %#v", restored)
	}
}

func TestDeriveCategoriesUsesUncategorized(t *testing.T) {
	set := DeriveCategories([]types.Note{{ID: "1"}, {ID: "2", Category: "Work"}, {ID: "3"}})
	want := []string{"All", "Uncategorized", "Work"}
	got := set.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if set.Add("Work") || set.Add("") {
		t.Fatalf("duplicates and empty values must not be added")
	}
}
