package projection

import (
	"time"

	"notesapp/internal/types"
)

const (
	SnippetLength  = 160
	EmptyListText  = "No notes found. Try creating one!"
	untitledLabel  = "Untitled"
	cardTimeFormat = "2006-01-02 15:04"
)

func DisplayTitle(note types.Note) string {
	if note.Title == "" {
		return untitledLabel
	}
	return note.Title
}

func DisplayCategory(note types.Note) string {
	return note.CategoryOrDefault()
}

// DisplayTime formats updatedAt, falling back to createdAt, in local time.
func DisplayTime(note types.Note) string {
	ts := note.UpdatedAt
	if ts == nil {
		ts = note.CreatedAt
	}
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(cardTimeFormat)
}

// Snippet returns at most the first SnippetLength runes of the content.
func Snippet(note types.Note) string {
	runes := []rune(note.Content)
	if len(runes) <= SnippetLength {
		return note.Content
	}
	return string(runes[:SnippetLength])
}

func DisplayTags(note types.Note) []string {
	out := make([]string, 0, len(note.Tags))
	for _, tag := range note.Tags {
		out = append(out, "#"+tag)
	}
	return out
}
