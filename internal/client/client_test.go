package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"notesapp/internal/types"
)

func TestClientListNotes(t *testing.T) {
	var seenPath, seenAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.Path
		seenAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","title":"A","content":"","category":"Work","tags":["x"]},{"id":"2","title":"B","content":"","category":"","tags":[]}]`))
	}))
	defer server.Close()

	c := New(server.URL + "//")
	notes, err := c.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes error: %v", err)
	}
	if seenPath != "/notes" {
		t.Fatalf("unexpected path %q", seenPath)
	}
	if seenAccept != "application/json" {
		t.Fatalf("unexpected accept header %q", seenAccept)
	}
	if len(notes) != 2 || notes[0].ID != "1" || notes[1].Title != "B" {
		t.Fatalf("unexpected notes: %#v", notes)
	}
}

func TestClientListNotesEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notes, err := New(server.URL).ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes error: %v", err)
	}
	if notes == nil || len(notes) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", notes)
	}
}

func TestClientCreateNoteSendsDraftWithoutID(t *testing.T) {
	var body map[string]any
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/notes" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		contentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"n1","title":"T","content":"","category":"Work","tags":[]}`))
	}))
	defer server.Close()

	created, err := New(server.URL).CreateNote(context.Background(), types.Note{Title: "T", Category: "Work"})
	if err != nil {
		t.Fatalf("CreateNote error: %v", err)
	}
	if created == nil || created.ID != "n1" {
		t.Fatalf("unexpected created note: %#v", created)
	}
	if contentType != "application/json" {
		t.Fatalf("unexpected content type %q", contentType)
	}
	if _, ok := body["id"]; ok {
		t.Fatalf("draft must not carry an id: %#v", body)
	}
	tags, ok := body["tags"].([]any)
	if !ok || len(tags) != 0 {
		t.Fatalf("expected empty tags array, got %#v", body["tags"])
	}
	for _, key := range []string{"title", "content", "category"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("expected %q in body: %#v", key, body)
		}
	}
}

func TestClientUpdateNoteEscapesID(t *testing.T) {
	var seenURI, seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenURI = r.URL.EscapedPath()
		seenAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	updated, err := New(server.URL, WithToken("tok")).UpdateNote(context.Background(), "a b/c", types.Note{ID: "a b/c", Title: "x"})
	if err != nil {
		t.Fatalf("UpdateNote error: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected no value for 204, got %#v", updated)
	}
	if seenURI != "/notes/a%20b%2Fc" {
		t.Fatalf("unexpected escaped path %q", seenURI)
	}
	if seenAuth != "Bearer tok" {
		t.Fatalf("unexpected authorization %q", seenAuth)
	}
}

func TestClientNonJSONSuccessYieldsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	defer server.Close()

	created, err := New(server.URL).CreateNote(context.Background(), types.Note{Title: "x"})
	if err != nil || created != nil {
		t.Fatalf("expected nil, nil; got %#v, %v", created, err)
	}
}

func TestClientErrorPayloadMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"note not found"}`))
	}))
	defer server.Close()

	err := New(server.URL).DeleteNote(context.Background(), "n1")
	reqErr := AsRequestError(err)
	if reqErr == nil {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusNotFound || reqErr.Message != "note not found" {
		t.Fatalf("unexpected error %#v", reqErr)
	}
}

func TestClientErrorFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html>boom</html>")
	}))
	defer server.Close()

	_, err := New(server.URL).ListNotes(context.Background())
	if err == nil || err.Error() != "Request failed (500)" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestClientTransportFailureIsRequestError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	_, err = New("http://" + addr).ListNotes(context.Background())
	reqErr := AsRequestError(err)
	if reqErr == nil {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != 0 || strings.TrimSpace(reqErr.Message) == "" {
		t.Fatalf("unexpected transport error %#v", reqErr)
	}
}

func TestClientHonoursContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(server.URL).ListNotes(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}

func TestClientRejectsEmptyID(t *testing.T) {
	c := New("http://127.0.0.1:1")
	_, err := c.UpdateNote(context.Background(), " ", types.Note{})
	if reqErr := AsRequestError(err); reqErr == nil || reqErr.Message != "note id is required" {
		t.Fatalf("expected RequestError for empty update id, got %v", err)
	}
	err = c.DeleteNote(context.Background(), "")
	if reqErr := AsRequestError(err); reqErr == nil || reqErr.Message != "note id is required" {
		t.Fatalf("expected RequestError for empty delete id, got %v", err)
	}
}

func TestClientReadsTokenPerRequest(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	token := ""
	c := New(server.URL, WithTokenSource(func() string { return token }))
	for _, next := range []string{"", "tok-alice", "tok-bob"} {
		token = next
		if _, err := c.ListNotes(context.Background()); err != nil {
			t.Fatalf("ListNotes error: %v", err)
		}
	}

	want := []string{"", "Bearer tok-alice", "Bearer tok-bob"}
	if len(seen) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("request %d: expected auth %q, got %q", i, want[i], seen[i])
		}
	}
}

func TestEnsureDaemonSkipsStartWhenHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	started := false
	prev := startDaemon
	startDaemon = func() error {
		started = true
		return nil
	}
	defer func() { startDaemon = prev }()

	if err := New(server.URL).EnsureDaemon(context.Background()); err != nil {
		t.Fatalf("EnsureDaemon error: %v", err)
	}
	if started {
		t.Fatalf("daemon should not be started when healthy")
	}
}
