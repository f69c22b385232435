package app

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"notesapp/internal/projection"
	"notesapp/internal/types"
)

type editorField int

const (
	editorFieldTitle editorField = iota
	editorFieldContent
	editorFieldCategory
	editorFieldTags
	editorFieldCount
)

type editorAction int

const (
	editorActionNone editorAction = iota
	editorActionSave
	editorActionCancel
	editorActionDelete
)

// noteEditor binds the input widgets to one EditBuffer.
type noteEditor struct {
	buf     *projection.EditBuffer
	title   textinput.Model
	content textarea.Model
	tags    textinput.Model
	focus   editorField
	busy    bool
	keys    editorKeyMap
}

func newNoteEditor(note types.Note) *noteEditor {
	buf := projection.Edit(note)

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Note title"
	title.SetValue(buf.Title)

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.ShowLineNumbers = false
	content.SetValue(buf.Content)
	content.SetHeight(6)

	tags := textinput.New()
	tags.Prompt = ""
	tags.Placeholder = "Tags (comma separated)"
	tags.SetValue(buf.TagsInput())

	e := &noteEditor{
		buf:     buf,
		title:   title,
		content: content,
		tags:    tags,
		keys:    defaultEditorKeyMap(),
	}
	e.setFocus(editorFieldTitle)
	return e
}

func (e *noteEditor) NoteID() string {
	return e.buf.ID()
}

// Note returns the buffered note merged over the original.
func (e *noteEditor) Note() types.Note {
	e.sync()
	return e.buf.Apply()
}

func (e *noteEditor) CanSave() bool {
	e.sync()
	return !e.busy && e.buf.CanSave()
}

func (e *noteEditor) sync() {
	e.buf.Title = e.title.Value()
	e.buf.Content = e.content.Value()
	e.buf.SetTagsInput(e.tags.Value())
}

func (e *noteEditor) setFocus(field editorField) {
	e.focus = field
	e.title.Blur()
	e.content.Blur()
	e.tags.Blur()
	switch field {
	case editorFieldTitle:
		e.title.Focus()
	case editorFieldContent:
		e.content.Focus()
	case editorFieldTags:
		e.tags.Focus()
	}
}

func (e *noteEditor) HandleKey(msg tea.KeyPressMsg) (editorAction, tea.Cmd) {
	switch {
	case key.Matches(msg, e.keys.Cancel):
		if e.busy {
			return editorActionNone, nil
		}
		return editorActionCancel, nil
	case key.Matches(msg, e.keys.Save):
		if !e.CanSave() {
			return editorActionNone, nil
		}
		return editorActionSave, nil
	case key.Matches(msg, e.keys.Delete):
		if e.busy || e.buf.IsDraft() {
			return editorActionNone, nil
		}
		return editorActionDelete, nil
	case key.Matches(msg, e.keys.NextField):
		e.setFocus((e.focus + 1) % editorFieldCount)
		return editorActionNone, nil
	case key.Matches(msg, e.keys.PrevField):
		e.setFocus((e.focus + editorFieldCount - 1) % editorFieldCount)
		return editorActionNone, nil
	}

	var cmd tea.Cmd
	switch e.focus {
	case editorFieldTitle:
		e.title, cmd = e.title.Update(msg)
	case editorFieldContent:
		e.content, cmd = e.content.Update(msg)
	case editorFieldCategory:
		switch {
		case key.Matches(msg, e.keys.NextCat):
			e.buf.CycleCategory(1)
		case key.Matches(msg, e.keys.PrevCat):
			e.buf.CycleCategory(-1)
		}
	case editorFieldTags:
		e.tags, cmd = e.tags.Update(msg)
	}
	return editorActionNone, cmd
}

func (e *noteEditor) View(width int) string {
	inner := max(20, width-4)
	e.title.SetWidth(inner)
	e.content.SetWidth(inner)
	e.tags.SetWidth(inner)

	var b strings.Builder
	heading := "Edit note"
	if e.buf.IsDraft() {
		heading = "New note"
	}
	b.WriteString(sectionTitleStyle.Render(heading))
	b.WriteString("\n")
	b.WriteString(e.label("Title", editorFieldTitle))
	b.WriteString("\n")
	b.WriteString(e.title.View())
	b.WriteString("\n")
	b.WriteString(e.label("Content", editorFieldContent))
	b.WriteString("\n")
	b.WriteString(e.content.View())
	b.WriteString("\n")
	b.WriteString(e.label("Category", editorFieldCategory))
	b.WriteString("\n")
	b.WriteString(e.categoryChoices())
	b.WriteString("\n")
	b.WriteString(e.label("Tags", editorFieldTags))
	b.WriteString("\n")
	b.WriteString(e.tags.View())
	b.WriteString("\n\n")
	b.WriteString(e.toolbar())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(truncateToWidth(helpLine(e.keys.Save, e.keys.Cancel, e.keys.Delete, e.keys.NextField), inner)))
	return editorFrameStyle.Width(width).Render(b.String())
}

func (e *noteEditor) label(text string, field editorField) string {
	if e.focus == field {
		return fieldFocusStyle.Render(text)
	}
	return fieldLabelStyle.Render(text)
}

func (e *noteEditor) categoryChoices() string {
	parts := make([]string, 0, len(projection.EditorCategories))
	for _, category := range projection.EditorCategories {
		if category == e.buf.Category {
			parts = append(parts, categoryActiveStyle.Render("["+category+"]"))
			continue
		}
		parts = append(parts, categoryStyle.Render(" "+category+" "))
	}
	return strings.Join(parts, " ")
}

func (e *noteEditor) toolbar() string {
	var parts []string
	if !e.buf.IsDraft() {
		parts = append(parts, buttonStyle.Render("Delete"))
	}
	parts = append(parts, buttonStyle.Render("Cancel"))
	if e.CanSave() {
		parts = append(parts, buttonPrimaryStyle.Render("Save"))
	} else {
		parts = append(parts, buttonDisabledStyle.Render("Save"))
	}
	return strings.Join(parts, " ")
}
