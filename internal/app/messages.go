package app

import (
	"time"

	"notesapp/internal/types"
)

type loginResultMsg struct {
	session *types.Session
	err     error
}

type notesLoadedMsg struct {
	err error
}

type noteCreatedMsg struct {
	note types.Note
	err  error
}

type noteSavedMsg struct {
	note types.Note
	err  error
}

type noteRemovedMsg struct {
	id  string
	err error
}

// notesChangedMsg reports a new synchronizer revision.
type notesChangedMsg struct {
	revision uint64
}

type searchSettleMsg struct {
	at time.Time
}

type clipboardResultMsg struct {
	method clipboardMethod
	err    error
}
