package projection

import (
	"strings"
	"testing"
	"time"

	"notesapp/internal/types"
)

func TestCardFallbacks(t *testing.T) {
	note := types.Note{}
	if DisplayTitle(note) != "Untitled" || DisplayCategory(note) != "Uncategorized" {
		t.Fatalf("unexpected fallbacks %q %q", DisplayTitle(note), DisplayCategory(note))
	}
	if DisplayTime(note) != "" {
		t.Fatalf("expected empty time")
	}
}

func TestDisplayTimePrefersUpdated(t *testing.T) {
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.Local)
	updated := time.Date(2026, 1, 2, 9, 30, 0, 0, time.Local)
	note := types.Note{CreatedAt: &created, UpdatedAt: &updated}
	if got := DisplayTime(note); got != "2026-01-02 09:30" {
		t.Fatalf("unexpected time %q", got)
	}
	note.UpdatedAt = nil
	if got := DisplayTime(note); got != "2026-01-01 08:00" {
		t.Fatalf("unexpected fallback time %q", got)
	}
}

func TestSnippetCountsRunes(t *testing.T) {
	long := strings.Repeat("é", 200)
	got := Snippet(types.Note{Content: long})
	if len([]rune(got)) != 160 {
		t.Fatalf("expected 160 runes, got %d", len([]rune(got)))
	}
	if Snippet(types.Note{Content: "short"}) != "short" {
		t.Fatalf("short content must be kept")
	}
}

func TestDisplayTags(t *testing.T) {
	got := DisplayTags(types.Note{Tags: []string{"a", "b"}})
	if strings.Join(got, " ") != "#a #b" {
		t.Fatalf("unexpected tags %v", got)
	}
}
