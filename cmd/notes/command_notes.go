package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"notesapp/internal/projection"
	"notesapp/internal/types"
)

type ListCommand struct {
	wiring commandWiring
}

func NewListCommand(wiring commandWiring) *ListCommand {
	return &ListCommand{wiring: wiring}
}

func (c *ListCommand) Run(args []string) error {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(c.wiring.stderr)
	category := fs.String("category", types.CategoryAll, "category to show")
	search := fs.String("search", "", "match title, content or tags")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	s, err := openNoteSession(ctx, c.wiring)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.notes.Load(ctx); err != nil {
		return err
	}
	filter := projection.Filter{Category: *category, Search: *search}
	printNotes(c.wiring.stdout, filter.Apply(s.notes.Notes()))
	return nil
}

type AddCommand struct {
	wiring commandWiring
}

func NewAddCommand(wiring commandWiring) *AddCommand {
	return &AddCommand{wiring: wiring}
}

func (c *AddCommand) Run(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(c.wiring.stderr)
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note body (markdown)")
	category := fs.String("category", "", "note category")
	tags := fs.String("tags", "", "comma separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	s, err := openNoteSession(ctx, c.wiring)
	if err != nil {
		return err
	}
	defer s.Close()

	draft := s.notes.NewDraft(*category)
	if value := strings.TrimSpace(*title); value != "" {
		draft.Title = value
	}
	draft.Content = *content
	draft.Tags = projection.ParseTags(*tags)

	created, err := s.notes.Create(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.wiring.stdout, created.ID)
	return nil
}

type RemoveCommand struct {
	wiring commandWiring
}

func NewRemoveCommand(wiring commandWiring) *RemoveCommand {
	return &RemoveCommand{wiring: wiring}
}

func (c *RemoveCommand) Run(args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(c.wiring.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: notes rm <id>")
	}

	ctx := context.Background()
	s, err := openNoteSession(ctx, c.wiring)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.notes.Remove(ctx, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Fprintf(c.wiring.stdout, "deleted %s\n", fs.Arg(0))
	return nil
}
