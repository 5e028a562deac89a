// Package gist implements the remote snapshot store client.
//
// The store is a gist-style document API: a flat file-name → content map per
// document, addressed by an opaque identifier, with second-granularity
// timestamps and no locking. The client covers:
//   - GET /gists/{id}           - fetch a snapshot
//   - POST /gists               - create a snapshot (assigns the identifier)
//   - PATCH /gists/{id}         - update; null file entries delete
//   - GET /gists                - newest snapshot (diagnostics)
//   - GET /gists/{id}/commits   - revision markers
//   - GET /gists/{id}/{version} - historical snapshot
//
// No operation is retried automatically; a failure is surfaced once per call.
package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// maxResponseSize limits response body reads to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// ErrNotFound indicates the identifier is stale or the document was deleted.
var ErrNotFound = errors.New("gist: not found")

// ErrAuth indicates a missing or rejected credential.
var ErrAuth = errors.New("gist: authentication failed")

// Error represents an error response from the store.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gist store error (status %d): %s", e.StatusCode, e.Body)
}

// Unwrap maps HTTP status classes onto the package sentinels so callers can
// use errors.Is.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	}
	return nil
}

// Snapshot is a remote document's full state at one point in time.
type Snapshot struct {
	ID        string
	Files     map[string]string
	UpdatedAt time.Time
}

// Revision is a point-in-time marker in a snapshot's history.
type Revision struct {
	Version     string    `json:"version"`
	CommittedAt time.Time `json:"committed_at"`
}

// Client is the gist store HTTP client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string // bearer credential, empty = unauthenticated
}

// New creates a new store client.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// NewWithToken creates a new store client with bearer authentication.
func NewWithToken(baseURL, token string) *Client {
	c := New(baseURL)
	c.token = token
	return c
}

// gistFile is the wire representation of one file entry.
type gistFile struct {
	Content string `json:"content"`
}

// gistResponse is the wire representation of a snapshot.
type gistResponse struct {
	ID        string              `json:"id"`
	Files     map[string]gistFile `json:"files"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func (g *gistResponse) snapshot() *Snapshot {
	files := make(map[string]string, len(g.Files))
	for name, f := range g.Files {
		files[name] = f.Content
	}
	return &Snapshot{
		ID:        g.ID,
		Files:     files,
		UpdatedAt: g.UpdatedAt,
	}
}

// createRequest is the request body for POST /gists.
type createRequest struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

// updateRequest is the request body for PATCH /gists/{id}. Nil file entries
// marshal to JSON null, which the store interprets as deletion; the store
// never infers deletion from omission.
type updateRequest struct {
	Files map[string]*gistFile `json:"files"`
}

// Fetch retrieves the current snapshot for an identifier.
// Returns ErrNotFound (wrapped) for stale/deleted identifiers and ErrAuth for
// missing or rejected credentials.
func (c *Client) Fetch(ctx context.Context, id string) (*Snapshot, error) {
	var resp gistResponse
	if err := c.do(ctx, http.MethodGet, "/gists/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.snapshot(), nil
}

// Create stores a new snapshot and returns it with the assigned identifier.
func (c *Client) Create(ctx context.Context, description string, public bool, files map[string]string) (*Snapshot, error) {
	req := createRequest{
		Description: description,
		Public:      public,
		Files:       make(map[string]gistFile, len(files)),
	}
	for name, content := range files {
		req.Files[name] = gistFile{Content: content}
	}

	var resp gistResponse
	if err := c.do(ctx, http.MethodPost, "/gists", &req, &resp); err != nil {
		return nil, err
	}
	return resp.snapshot(), nil
}

// Update replaces the files of an existing snapshot. Paths listed in
// deletions are sent as explicit null entries.
func (c *Client) Update(ctx context.Context, id string, files map[string]string, deletions []string) (*Snapshot, error) {
	req := updateRequest{
		Files: make(map[string]*gistFile, len(files)+len(deletions)),
	}
	for name, content := range files {
		req.Files[name] = &gistFile{Content: content}
	}
	for _, name := range deletions {
		req.Files[name] = nil
	}

	var resp gistResponse
	if err := c.do(ctx, http.MethodPatch, "/gists/"+url.PathEscape(id), &req, &resp); err != nil {
		return nil, err
	}
	return resp.snapshot(), nil
}

// Newest returns the most recently updated snapshot across all documents the
// credential can see, or nil if there are none. Diagnostics only; the sync
// loop always fetches by the stored identifier.
func (c *Client) Newest(ctx context.Context) (*Snapshot, error) {
	var listing []gistResponse
	if err := c.do(ctx, http.MethodGet, "/gists?per_page=1", nil, &listing); err != nil {
		return nil, err
	}
	if len(listing) == 0 {
		return nil, nil
	}
	// Listing entries omit file contents; fetch the full document.
	return c.Fetch(ctx, listing[0].ID)
}

// ListRevisions returns the ordered revision markers for a snapshot.
func (c *Client) ListRevisions(ctx context.Context, id string) ([]Revision, error) {
	var revisions []Revision
	if err := c.do(ctx, http.MethodGet, "/gists/"+url.PathEscape(id)+"/commits", nil, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}

// FetchRevision retrieves a historical snapshot by revision marker.
func (c *Client) FetchRevision(ctx context.Context, id, version string) (*Snapshot, error) {
	path := fmt.Sprintf("/gists/%s/%s", url.PathEscape(id), url.PathEscape(version))
	var resp gistResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.snapshot(), nil
}

// do sends a request with an optional JSON body and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	var bodyReader io.Reader
	if reqBody != nil {
		body, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Read maxResponseSize+1 to detect oversized responses while still
	// accepting responses exactly at the limit.
	respBodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if int64(len(respBodyBytes)) > maxResponseSize {
		return fmt.Errorf("response exceeds maximum size of %d bytes", maxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			StatusCode: resp.StatusCode,
			Body:       string(respBodyBytes),
		}
	}

	if err := json.Unmarshal(respBodyBytes, respBody); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
