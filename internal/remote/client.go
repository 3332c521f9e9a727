// Package remote talks to the recipe collection endpoint over HTTP/JSON.
package remote

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

	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeStore = (*Client)(nil)

// ErrRequest matches every failure the client returns.
var ErrRequest = errors.New("remote request failed")

// Error describes a failed call. The cause is kept for logs only.
type Error struct {
	Method string
	URL    string
	Status int // 0 when no response arrived
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote: %s %s: status %d: %v", e.Method, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("remote: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrRequest) hold for every *Error.
func (e *Error) Is(target error) bool { return target == ErrRequest }

// ── Wire types ───────────────────────────────────────────────────

// record is the server's representation of a recipe.
type record struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	Cuisine     string `json:"cuisine"`
}

// body is the request payload for create and update.
type body struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	Cuisine     string `json:"cuisine"`
}

func (r record) recipe() domain.Recipe {
	return domain.Recipe{
		ID:          r.ID,
		Name:        r.Name,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		Cuisine:     r.Cuisine,
	}
}

func bodyFrom(d domain.Draft) body {
	return body{
		Name:        d.Name,
		Ingredients: d.Ingredients,
		Steps:       d.Steps,
		Cuisine:     d.Cuisine,
	}
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithHTTPTimeout sets the HTTP client timeout. Zero means no timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) { c.headers.Set(key, value) }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return WithHeader("User-Agent", ua)
}

// Client is a domain.RecipeStore backed by a REST collection endpoint.
type Client struct {
	base    string
	http    *http.Client
	headers http.Header
	log     *logger.Logger
}

// NewClient creates a client for the collection at base, e.g.
// "https://example.netlify.app/.netlify/functions/api".
func NewClient(base string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		base:    strings.TrimRight(base, "/"),
		http:    &http.Client{},
		headers: make(http.Header),
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Base returns the collection URL without a trailing slash.
func (c *Client) Base() string { return c.base }

// FetchAll lists the whole collection.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Recipe, error) {
	var recs []record
	if err := c.do(ctx, http.MethodGet, c.base, nil, &recs); err != nil {
		return nil, err
	}
	out := make([]domain.Recipe, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.recipe())
	}
	c.log.Debug("remote: fetched %d recipes", len(out))
	return out, nil
}

// Create posts a new recipe and returns it with its server-assigned ID.
func (c *Client) Create(ctx context.Context, draft domain.Draft) (domain.Recipe, error) {
	var rec record
	if err := c.do(ctx, http.MethodPost, c.base, bodyFrom(draft), &rec); err != nil {
		return domain.Recipe{}, err
	}
	if rec.ID == "" {
		return domain.Recipe{}, &Error{Method: http.MethodPost, URL: c.base, Err: errors.New("response has no _id")}
	}
	return rec.recipe(), nil
}

// Update replaces the recipe with the given ID.
func (c *Client) Update(ctx context.Context, id string, draft domain.Draft) (domain.Recipe, error) {
	u := c.itemURL(id)
	var rec record
	if err := c.do(ctx, http.MethodPut, u, bodyFrom(draft), &rec); err != nil {
		return domain.Recipe{}, err
	}
	// Some backends answer without echoing the id.
	if rec.ID == "" {
		rec.ID = id
	}
	return rec.recipe(), nil
}

// Remove deletes the recipe with the given ID. The response body is
// ignored.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id string) string {
	return c.base + "/" + url.PathEscape(id)
}

// do sends one request. in is JSON-encoded when non-nil; out is decoded
// from the response when non-nil.
func (c *Client) do(ctx context.Context, method, u string, in, out any) error {
	fail := func(status int, err error) error {
		return &Error{Method: method, URL: u, Status: status, Err: err}
	}

	var reqBody io.Reader
	var size int
	if in != nil {
		jsonData, err := json.Marshal(in)
		if err != nil {
			return fail(0, fmt.Errorf("marshal payload: %w", err))
		}
		reqBody = bytes.NewReader(jsonData)
		size = len(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fail(0, fmt.Errorf("create request: %w", err))
	}
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("remote: %s %s (%d bytes)", method, u, size)

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, fmt.Errorf("%s: %s", resp.Status, truncate(string(respBody), 200)))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("unmarshal response: %w", err))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
