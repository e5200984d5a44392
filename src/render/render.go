// Package render implements the one-shot fetch -> parse -> render pipeline
// for the matcha cafe dataset: retrieve the JSON document over HTTP, decode
// it, and write either a sequence of cards, an empty-result message, or a
// fixed failure message into the given container.
package render

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"matchafinder/src/types"
)

//go:embed templates/cards.html
var templateFS embed.FS

const (
	// EmptyMessage is shown when the dataset decodes to zero places.
	EmptyMessage = "No matcha places found or data is empty."
	// FailedMessage replaces the container content on any fetch or parse
	// failure. The distinguishing detail only goes to the log.
	FailedMessage = "Failed to load matcha places. Please try again later."
)

// State is the terminal outcome of one pipeline run.
type State int

const (
	StateLoading State = iota
	StateRendered
	StateEmpty
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRendered:
		return "rendered"
	case StateEmpty:
		return "empty"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// FetchError reports a request that never produced a usable 2xx response.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that does not decode as a place list.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse place list: " + e.Err.Error() }

func (e *ParseError) Unwrap() error { return e.Err }

type Renderer struct {
	client *http.Client
	tmpl   *template.Template
	log    *slog.Logger
}

func New(client *http.Client, logger *slog.Logger) (*Renderer, error) {
	if client == nil {
		client = http.DefaultClient
	}

	tmpl, err := template.ParseFS(templateFS, "templates/cards.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{client: client, tmpl: tmpl, log: logger}, nil
}

// LoadAndRender runs the whole pipeline once: GET url, decode the body as a
// place list, and write the outcome into container. It never retries and
// reports the terminal state it reached. The container is written exactly
// once, so re-running against the same data produces identical output.
func (r *Renderer) LoadAndRender(ctx context.Context, url string, container io.Writer) State {
	places, err := r.fetch(ctx, url)
	if err != nil {
		r.log.Error("loading matcha places failed", "url", url, "error", err)
		r.writeMessage(container, FailedMessage)
		return StateFailed
	}

	if len(places) == 0 {
		r.writeMessage(container, EmptyMessage)
		return StateEmpty
	}

	if err := r.tmpl.ExecuteTemplate(container, "cards", BuildCards(places)); err != nil {
		r.log.Error("rendering cards failed", "error", err)
		return StateFailed
	}

	return StateRendered
}

// Page wraps already-rendered container content in the full HTML document.
func (r *Renderer) Page(w io.Writer, content template.HTML) error {
	return r.tmpl.ExecuteTemplate(w, "page", content)
}

func (r *Renderer) fetch(ctx context.Context, url string) ([]types.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	var places []types.Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, &ParseError{Err: err}
	}

	return places, nil
}

func (r *Renderer) writeMessage(container io.Writer, msg string) {
	if err := r.tmpl.ExecuteTemplate(container, "message", msg); err != nil {
		r.log.Error("writing message failed", "error", err)
	}
}
