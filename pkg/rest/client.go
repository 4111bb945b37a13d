// Package rest is the thin transport collaborator of the field/item core:
// it fetches raw records for decoding and ships write-back payloads
// produced by pkg/item. It knows nothing about field semantics.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gridapp/grid-go/internal/audit"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.grid.example.com"

const defaultTimeout = 30 * time.Second

// TokenProvider supplies the bearer token for each request. Implementations
// decide how tokens are stored and refreshed.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// StaticToken is a TokenProvider for a fixed, pre-obtained token.
type StaticToken string

// AccessToken returns the fixed token.
func (t StaticToken) AccessToken(context.Context) (string, error) {
	return string(t), nil
}

// APIError is a non-2xx response from the API, carrying the platform's
// error body when one was supplied.
type APIError struct {
	StatusCode  int    `json:"-"`
	ErrorCode   string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.ErrorCode, e.Description)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client talks to the Grid REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	userAgent  string
	logger     *audit.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, e.g. for a staging environment.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger attaches an event logger; requests and errors are recorded.
func WithLogger(l *audit.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates an API client authenticating through the given token
// provider.
func NewClient(tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		tokens:     tokens,
		userAgent:  "grid-go",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST request with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// put issues a PUT request with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// delete issues a DELETE request.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to obtain access token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logError(err, map[string]interface{}{"method": method, "path": path})
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logRequest(method, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// The error body is best-effort; the status code alone is enough.
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) logRequest(method, path string, status int) {
	if c.logger != nil {
		c.logger.LogRequest(method, path, status)
	}
}

func (c *Client) logError(err error, details map[string]interface{}) {
	if c.logger != nil {
		c.logger.LogError("rest", err, details)
	}
}
