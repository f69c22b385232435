package app

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
)

type categoryItem string

func (c categoryItem) FilterValue() string {
	return string(c)
}

type categoryDelegate struct {
	active  string
	focused bool
	width   int
}

func (d *categoryDelegate) Height() int {
	return 1
}

func (d *categoryDelegate) Spacing() int {
	return 0
}

func (d *categoryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d *categoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	category, ok := item.(categoryItem)
	if !ok {
		return
	}
	marker := "  "
	if string(category) == d.active {
		marker = "• "
	}
	line := truncateToWidth(marker+string(category), d.width)
	style := categoryStyle
	if string(category) == d.active {
		style = categoryActiveStyle
	}
	if d.focused && index == m.Index() {
		style = categoryCursorStyle
		line = padLines(line, d.width)
	}
	fmt.Fprint(w, style.Render(line))
}

// categorySidebar lists the known categories. Moving the cursor selects the
// category under it.
type categorySidebar struct {
	list     list.Model
	delegate *categoryDelegate
}

func newCategorySidebar(width, height int) *categorySidebar {
	delegate := &categoryDelegate{width: width}
	l := list.New(nil, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.SetShowStatusBar(false)
	return &categorySidebar{list: l, delegate: delegate}
}

func (s *categorySidebar) SetSize(width, height int) {
	s.delegate.width = width
	s.list.SetSize(width, max(1, height))
}

func (s *categorySidebar) SetFocused(focused bool) {
	s.delegate.focused = focused
}

func (s *categorySidebar) SetCategories(categories []string, active string) {
	items := make([]list.Item, 0, len(categories))
	selected := 0
	for i, category := range categories {
		items = append(items, categoryItem(category))
		if category == active {
			selected = i
		}
	}
	s.list.SetItems(items)
	s.list.Select(selected)
	s.delegate.active = active
}

func (s *categorySidebar) Move(delta int) string {
	switch {
	case delta < 0:
		s.list.CursorUp()
	case delta > 0:
		s.list.CursorDown()
	}
	return s.Selected()
}

func (s *categorySidebar) Selected() string {
	item, ok := s.list.SelectedItem().(categoryItem)
	if !ok {
		return ""
	}
	return string(item)
}

func (s *categorySidebar) View() string {
	return sectionTitleStyle.Render("Categories") + "\n" + s.list.View()
}
