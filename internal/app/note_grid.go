package app

import (
	"strings"

	"notesapp/internal/projection"
	"notesapp/internal/types"
)

const cardHeight = 6

func renderCard(note types.Note, width int, selected bool) string {
	inner := max(10, width-4)
	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(truncateToWidth(projection.DisplayTitle(note), inner)))
	b.WriteString("\n")
	meta := projection.DisplayCategory(note) + " • " + projection.DisplayTime(note)
	b.WriteString(cardMetaStyle.Render(truncateToWidth(meta, inner)))
	b.WriteString("\n")
	b.WriteString(cardSnippetStyle.Render(truncateToWidth(singleLine(projection.Snippet(note)), inner)))
	b.WriteString("\n")
	if tags := projection.DisplayTags(note); len(tags) > 0 {
		b.WriteString(tagStyle.Render(truncateToWidth(strings.Join(tags, " "), inner)))
	}
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Width(width).Render(b.String())
}

// renderGrid draws the cards that fit in height, keeping the selected card
// in view. The selection is only highlighted while the grid has focus.
func renderGrid(notes []types.Note, selected, width, height int, highlight bool) string {
	if len(notes) == 0 {
		return ""
	}
	visible := max(1, height/cardHeight)
	start := 0
	if selected >= visible {
		start = selected - visible + 1
	}
	end := min(len(notes), start+visible)
	cards := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		cards = append(cards, renderCard(notes[i], width, highlight && i == selected))
	}
	return strings.Join(cards, "\n")
}
