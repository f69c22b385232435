package projection

import (
	"strings"

	"notesapp/internal/types"
)

// Filter is the user-facing filter state. Search holds the debounced text
// used for matching, not every keystroke.
type Filter struct {
	Category string
	Search   string
}

func DefaultFilter() Filter {
	return Filter{Category: types.CategoryAll}
}

func (f Filter) Apply(notes []types.Note) []types.Note {
	return Project(notes, f.Category, f.Search)
}

// Project keeps the notes matching both the category and the search text,
// preserving input order.
func Project(notes []types.Note, activeCategory, search string) []types.Note {
	query := strings.ToLower(search)
	out := make([]types.Note, 0, len(notes))
	for _, note := range notes {
		if !MatchesCategory(note, activeCategory) {
			continue
		}
		if !matchesQuery(note, query) {
			continue
		}
		out = append(out, note)
	}
	return out
}

// MatchesCategory treats a note without a category as Uncategorized. An
// empty active category behaves like All.
func MatchesCategory(note types.Note, activeCategory string) bool {
	if activeCategory == "" || activeCategory == types.CategoryAll {
		return true
	}
	return note.CategoryOrDefault() == activeCategory
}

// MatchesSearch reports whether the lowercased query is a substring of the
// title, the content or any tag.
func MatchesSearch(note types.Note, search string) bool {
	return matchesQuery(note, strings.ToLower(search))
}

func matchesQuery(note types.Note, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(note.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(note.Content), query) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
