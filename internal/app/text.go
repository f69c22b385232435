package app

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if xansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return xansi.Truncate(text, width-1, "") + "…"
}

// singleLine folds newlines so card snippets stay on one row.
func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func padLines(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if w := xansi.StringWidth(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}
