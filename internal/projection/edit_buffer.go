package projection

import (
	"strings"

	"notesapp/internal/types"
)

// EditorCategories are the choices offered by the note editor.
var EditorCategories = []string{
	types.CategoryPersonal,
	types.CategoryWork,
	types.CategoryIdeas,
	types.CategoryArchive,
	types.CategoryUncategorized,
}

// EditBuffer is the working copy of one note. Changes stay here until the
// merged note is saved.
type EditBuffer struct {
	base     types.Note
	Title    string
	Content  string
	Category string
	Tags     []string
}

func Edit(note types.Note) *EditBuffer {
	note = note.Clone()
	category := note.Category
	if category == "" {
		category = types.CategoryPersonal
	}
	return &EditBuffer{
		base:     note,
		Title:    note.Title,
		Content:  note.Content,
		Category: category,
		Tags:     append([]string{}, note.Tags...),
	}
}

// ID is empty while the buffer holds a draft.
func (b *EditBuffer) ID() string {
	return b.base.ID
}

func (b *EditBuffer) IsDraft() bool {
	return b.base.IsDraft()
}

func (b *EditBuffer) SetTagsInput(input string) {
	b.Tags = ParseTags(input)
}

func (b *EditBuffer) TagsInput() string {
	return strings.Join(b.Tags, ", ")
}

// CanSave is false while the trimmed title is empty.
func (b *EditBuffer) CanSave() bool {
	return strings.TrimSpace(b.Title) != ""
}

// CycleCategory moves to the next (or previous) editor category.
func (b *EditBuffer) CycleCategory(step int) {
	idx := 0
	for i, category := range EditorCategories {
		if category == b.Category {
			idx = i
			break
		}
	}
	n := len(EditorCategories)
	b.Category = EditorCategories[((idx+step)%n+n)%n]
}

// Apply returns the original note overlaid with the buffered fields.
func (b *EditBuffer) Apply() types.Note {
	out := b.base.Clone()
	out.Title = b.Title
	out.Content = b.Content
	out.Category = b.Category
	out.Tags = append([]string{}, b.Tags...)
	return out
}

// ParseTags splits on commas, trims each entry and drops blanks. Duplicates
// are kept.
func ParseTags(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
