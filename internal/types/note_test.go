package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNoteDraftEncodingCarriesAllFields(t *testing.T) {
	draft := Note{Title: "T"}.Normalized()
	raw, err := json.Marshal(draft)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(raw)
	for _, want := range []string{`"title":"T"`, `"content":""`, `"category":""`, `"tags":[]`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %s in %s", want, got)
		}
	}
	if strings.Contains(got, `"id"`) {
		t.Fatalf("draft must not carry an id: %s", got)
	}
	if strings.Contains(got, "createdAt") || strings.Contains(got, "updatedAt") {
		t.Fatalf("draft must not carry timestamps: %s", got)
	}
}

func TestNoteCloneIsDeep(t *testing.T) {
	now := time.Now().UTC()
	note := Note{ID: "n1", Tags: []string{"a", "a"}, CreatedAt: &now}
	clone := note.Clone()
	clone.Tags[0] = "b"
	*clone.CreatedAt = now.Add(time.Hour)
	if note.Tags[0] != "a" {
		t.Fatalf("tags shared with clone")
	}
	if !note.CreatedAt.Equal(now) {
		t.Fatalf("timestamp shared with clone")
	}
	if len(clone.Tags) != 2 {
		t.Fatalf("duplicate tags must be kept, got %v", clone.Tags)
	}
}

func TestCategoryOrDefault(t *testing.T) {
	if got := (Note{}).CategoryOrDefault(); got != CategoryUncategorized {
		t.Fatalf("expected %q, got %q", CategoryUncategorized, got)
	}
	if got := (Note{Category: "Work"}).CategoryOrDefault(); got != "Work" {
		t.Fatalf("expected Work, got %q", got)
	}
}
