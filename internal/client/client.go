package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"notesapp/internal/types"
)

// Client talks to a notes service over JSON/HTTP. Requests carry no
// client-side timeout; callers bound them through the context.
type Client struct {
	baseURL string
	token   func() string
	http    *http.Client
}

type Option func(*Client)

// WithToken sends a fixed session token as a bearer credential.
func WithToken(token string) Option {
	token = strings.TrimSpace(token)
	return WithTokenSource(func() string { return token })
}

// WithTokenSource reads the bearer token on every request, so a session
// that changes after the client is built is picked up.
func WithTokenSource(source func() string) Option {
	return func(c *Client) {
		c.token = source
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListNotes(ctx context.Context) ([]types.Note, error) {
	var notes []types.Note
	ok, err := c.doJSON(ctx, http.MethodGet, "/notes", nil, &notes)
	if err != nil {
		return nil, err
	}
	if !ok || notes == nil {
		return []types.Note{}, nil
	}
	return notes, nil
}

// CreateNote returns nil without error when the service answers with an
// empty body.
func (c *Client) CreateNote(ctx context.Context, draft types.Note) (*types.Note, error) {
	draft = draft.Normalized()
	draft.ID = ""
	var created types.Note
	ok, err := c.doJSON(ctx, http.MethodPost, "/notes", draft, &created)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &created, nil
}

func (c *Client) UpdateNote(ctx context.Context, id string, note types.Note) (*types.Note, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errMissingID()
	}
	var updated types.Note
	ok, err := c.doJSON(ctx, http.MethodPut, notePath(id), note.Normalized(), &updated)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &updated, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errMissingID()
	}
	_, err := c.doJSON(ctx, http.MethodDelete, notePath(id), nil, nil)
	return err
}

type HealthResponse struct {
	OK bool `json:"ok"`
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if _, err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EnsureDaemon starts the local notes daemon when nothing answers on the
// configured address and waits for it to report healthy.
func (c *Client) EnsureDaemon(ctx context.Context) error {
	if c.healthy(ctx) {
		return nil
	}
	if err := startDaemon(); err != nil {
		return err
	}
	deadline := time.Now().Add(4 * time.Second)
	for time.Now().Before(deadline) {
		if c.healthy(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(150 * time.Millisecond):
		}
	}
	return errors.New("daemon not healthy after start")
}

func (c *Client) healthy(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	resp, err := c.Health(probeCtx)
	return err == nil && resp.OK
}

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}

// doJSON reports whether a response value was decoded into out. A 204 or
// an empty or non-JSON success body yields no value.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) (bool, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return false, &RequestError{Message: err.Error(), Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return false, &RequestError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return false, &RequestError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, decodeRequestError(resp.StatusCode, raw)
	}
	if readErr != nil {
		return false, &RequestError{StatusCode: resp.StatusCode, Message: readErr.Error(), Err: readErr}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, nil
	}
	return true, nil
}

func decodeRequestError(status int, raw []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	_ = json.Unmarshal(raw, &payload)
	if strings.TrimSpace(payload.Error) != "" {
		return &RequestError{StatusCode: status, Message: payload.Error}
	}
	return &RequestError{StatusCode: status, Message: fmt.Sprintf("Request failed (%d)", status)}
}

// RequestError is the single failure kind of the client. StatusCode is zero
// when the request never produced a response.
func (c *Client) bearer() string {
	if c.token == nil {
		return ""
	}
	return strings.TrimSpace(c.token())
}

func errMissingID() error {
	return &RequestError{Message: "note id is required"}
}

type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsRequestError returns the RequestError in err's chain, if any.
func AsRequestError(err error) *RequestError {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr
	}
	return nil
}
