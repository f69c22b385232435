package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"notesapp/internal/types"
)

// Remote work runs detached from the UI lifecycle; leaving a screen never
// cancels a request already in flight.

func loginCmd(sessions SessionService, username, password string) tea.Cmd {
	return func() tea.Msg {
		session, err := sessions.Login(context.Background(), username, password)
		return loginResultMsg{session: session, err: err}
	}
}

func loadNotesCmd(notes NoteService) tea.Cmd {
	return func() tea.Msg {
		return notesLoadedMsg{err: notes.Load(context.Background())}
	}
}

func createNoteCmd(notes NoteService, draft types.Note) tea.Cmd {
	return func() tea.Msg {
		created, err := notes.Create(context.Background(), draft)
		return noteCreatedMsg{note: created, err: err}
	}
}

func saveNoteCmd(notes NoteService, note types.Note) tea.Cmd {
	return func() tea.Msg {
		saved, err := notes.Save(context.Background(), note)
		return noteSavedMsg{note: saved, err: err}
	}
}

func removeNoteCmd(notes NoteService, id string) tea.Cmd {
	return func() tea.Msg {
		return noteRemovedMsg{id: id, err: notes.Remove(context.Background(), id)}
	}
}

func searchSettleCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(at time.Time) tea.Msg {
		return searchSettleMsg{at: at}
	})
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		method, err := copyTextToClipboard(text)
		return clipboardResultMsg{method: method, err: err}
	}
}
