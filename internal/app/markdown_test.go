package app

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRenderMarkdownEmpty(t *testing.T) {
	if got := renderMarkdown("\n\n", 40); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestRenderMarkdownFitsWidth(t *testing.T) {
	input := "# Heading\n\n" + strings.Repeat("word ", 40)
	out := xansi.Strip(renderMarkdown(input, 30))
	if !strings.Contains(out, "Heading") {
		t.Fatalf("expected heading text, got %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := xansi.StringWidth(line); w > 30 {
			t.Fatalf("line wider than 30 cells (%d): %q", w, line)
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("hello world", 5); got != "hell…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateToWidth("hi", 5); got != "hi" {
		t.Fatalf("short text must be kept, got %q", got)
	}
}
