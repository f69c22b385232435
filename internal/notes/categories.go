package notes

import "notesapp/internal/types"

// DefaultCategories is the category list shown before the first load.
var DefaultCategories = []string{
	types.CategoryAll,
	types.CategoryPersonal,
	types.CategoryWork,
	types.CategoryIdeas,
	types.CategoryArchive,
}

// CategorySet is an insertion-ordered set of category labels that always
// starts with All. It only grows between loads.
type CategorySet struct {
	values []string
	index  map[string]struct{}
}

func NewCategorySet(values ...string) *CategorySet {
	s := &CategorySet{index: map[string]struct{}{}}
	s.Add(types.CategoryAll)
	for _, value := range values {
		s.Add(value)
	}
	return s
}

// DeriveCategories builds the set for a freshly loaded collection, in
// first-seen order.
func DeriveCategories(notes []types.Note) *CategorySet {
	s := NewCategorySet()
	for _, note := range notes {
		s.Add(note.CategoryOrDefault())
	}
	return s
}

// Add reports whether value was new. Empty values are ignored.
func (s *CategorySet) Add(value string) bool {
	if value == "" {
		return false
	}
	if _, ok := s.index[value]; ok {
		return false
	}
	s.index[value] = struct{}{}
	s.values = append(s.values, value)
	return true
}

func (s *CategorySet) Contains(value string) bool {
	_, ok := s.index[value]
	return ok
}

func (s *CategorySet) Len() int {
	return len(s.values)
}

func (s *CategorySet) Values() []string {
	return append([]string(nil), s.values...)
}
