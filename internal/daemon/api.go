package daemon

import (
	"encoding/json"
	"net/http"

	"notesapp/internal/logging"
	"notesapp/internal/types"
)

type API struct {
	Notes  *NoteService
	Logger logging.Logger
}

// RegisterRoutes mounts the notes API. The mux answers 405 for known paths
// with an unsupported method.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", a.health)
	mux.HandleFunc("GET /notes", a.listNotes)
	mux.HandleFunc("POST /notes", a.createNote)
	mux.HandleFunc("PUT /notes/{id}", a.updateNote)
	mux.HandleFunc("DELETE /notes/{id}", a.deleteNote)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

func (a *API) listNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := a.Notes.List(r.Context())
	if err != nil {
		a.fail(w, "list", err)
		return
	}
	respond(w, http.StatusOK, notes)
}

func (a *API) createNote(w http.ResponseWriter, r *http.Request) {
	note, ok := decodeNote(w, r)
	if !ok {
		return
	}
	created, err := a.Notes.Create(r.Context(), note)
	if err != nil {
		a.fail(w, "create", err)
		return
	}
	respond(w, http.StatusCreated, created)
}

func (a *API) updateNote(w http.ResponseWriter, r *http.Request) {
	note, ok := decodeNote(w, r)
	if !ok {
		return
	}
	updated, err := a.Notes.Update(r.Context(), r.PathValue("id"), note)
	if err != nil {
		a.fail(w, "update", err)
		return
	}
	respond(w, http.StatusOK, updated)
}

func (a *API) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := a.Notes.Delete(r.Context(), r.PathValue("id")); err != nil {
		a.fail(w, "delete", err)
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func decodeNote(w http.ResponseWriter, r *http.Request) (types.Note, bool) {
	var note types.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		respondError(w, badRequest("invalid json body"))
		return types.Note{}, false
	}
	return note, true
}

func (a *API) fail(w http.ResponseWriter, op string, err error) {
	if a.Logger != nil {
		a.Logger.Warn("note "+op+" failed", logging.Err(err))
	}
	respondError(w, err)
}
