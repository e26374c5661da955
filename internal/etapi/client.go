// Package etapi is a minimal client for the Trilium ETAPI surface the
// migration needs: note creation, attribute creation, exact-title search,
// and content updates.
package etapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultRequestTimeout = 60 * time.Second

// Client talks to a Trilium server over ETAPI. All calls are blocking
// round-trips; callers are expected to treat every call as possibly failing.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Options configures a Client.
type Options struct {
	// HTTPClient overrides the default client (for testing).
	HTTPClient *http.Client
	// Timeout is the per-request timeout (defaults to 60s). Ignored when
	// HTTPClient is set.
	Timeout time.Duration
}

// New creates an ETAPI client for the given server URL and token.
func New(baseURL, token string, opts *Options) *Client {
	httpClient := (*http.Client)(nil)
	timeout := defaultRequestTimeout
	if opts != nil {
		httpClient = opts.HTTPClient
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// CreateNoteParams are the fields for a create-note call.
type CreateNoteParams struct {
	ParentNoteID string `json:"parentNoteId"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	Mime         string `json:"mime,omitempty"`
	Content      string `json:"content"`
}

// CreateAttributeParams are the fields for an attribute (label or relation)
// creation call.
type CreateAttributeParams struct {
	NoteID        string `json:"noteId"`
	Type          string `json:"type"`
	Name          string `json:"name"`
	Value         string `json:"value"`
	IsInheritable bool   `json:"isInheritable"`
}

// SearchResult is one hit from a note search.
type SearchResult struct {
	NoteID string `json:"noteId"`
	Title  string `json:"title"`
}

// CreateNote creates a note and returns its ID.
func (c *Client) CreateNote(p CreateNoteParams) (string, error) {
	var resp struct {
		Note struct {
			NoteID string `json:"noteId"`
		} `json:"note"`
	}
	if err := c.doJSON(http.MethodPost, "/etapi/create-note", p, &resp); err != nil {
		return "", fmt.Errorf("create note %q: %w", p.Title, err)
	}
	if resp.Note.NoteID == "" {
		return "", fmt.Errorf("create note %q: response missing note ID", p.Title)
	}
	return resp.Note.NoteID, nil
}

// CreateAttribute creates a label or relation attribute on a note and
// returns the attribute ID.
func (c *Client) CreateAttribute(p CreateAttributeParams) (string, error) {
	var resp struct {
		AttributeID string `json:"attributeId"`
	}
	if err := c.doJSON(http.MethodPost, "/etapi/attributes", p, &resp); err != nil {
		return "", fmt.Errorf("create %s %q: %w", p.Type, p.Name, err)
	}
	return resp.AttributeID, nil
}

// SearchNotes runs a Trilium search expression and returns matching notes.
func (c *Client) SearchNotes(query string) ([]SearchResult, error) {
	endpoint := "/etapi/notes?search=" + url.QueryEscape(query)
	var resp struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.doJSON(http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	return resp.Results, nil
}

// SearchByTitle returns notes whose title matches exactly.
func (c *Client) SearchByTitle(title string) ([]SearchResult, error) {
	return c.SearchNotes(fmt.Sprintf("note.title = '%s'", strings.ReplaceAll(title, "'", `\'`)))
}

// UpdateNoteContent replaces a note's content.
func (c *Client) UpdateNoteContent(noteID, content string) error {
	endpoint := fmt.Sprintf("/etapi/notes/%s/content", url.PathEscape(noteID))
	req, err := http.NewRequest(http.MethodPut, c.baseURL+endpoint, strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("update note content: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("update note %s content: %w", noteID, err)
	}
	return nil
}

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil).
func (c *Client) doJSON(method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
