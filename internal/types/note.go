package types

import "time"

const (
	CategoryAll           = "All"
	CategoryUncategorized = "Uncategorized"
	CategoryPersonal      = "Personal"
	CategoryWork          = "Work"
	CategoryIdeas         = "Ideas"
	CategoryArchive       = "Archive"
)

// Note is the wire and in-memory shape of a note. ID is empty for a draft.
type Note struct {
	ID        string     `json:"id,omitempty"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	Tags      []string   `json:"tags"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// IsDraft reports whether the note has not been persisted yet.
func (n Note) IsDraft() bool {
	return n.ID == ""
}

// CategoryOrDefault returns the category, or Uncategorized when it is empty.
func (n Note) CategoryOrDefault() string {
	if n.Category == "" {
		return CategoryUncategorized
	}
	return n.Category
}

// Clone returns a deep copy so callers never share tag slices or timestamps.
func (n Note) Clone() Note {
	out := n
	if n.Tags != nil {
		out.Tags = append([]string{}, n.Tags...)
	} else {
		out.Tags = []string{}
	}
	if n.CreatedAt != nil {
		created := *n.CreatedAt
		out.CreatedAt = &created
	}
	if n.UpdatedAt != nil {
		updated := *n.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

// Normalized fills the fields that must always travel on the wire.
func (n Note) Normalized() Note {
	out := n.Clone()
	if out.Tags == nil {
		out.Tags = []string{}
	}
	return out
}

func CloneNotes(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, note := range notes {
		out = append(out, note.Clone())
	}
	return out
}
