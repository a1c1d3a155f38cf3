// Package apiclient is a Go client for the CaseDesk API. Session tokens
// travel in httpOnly cookies managed by the client's jar; when an access
// token expires, the client refreshes the session once and replays the
// failed request transparently.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client calls the CaseDesk API with automatic refresh-and-retry on 401.
type Client struct {
	baseURL string
	httpc   *http.Client
	coord   *Coordinator
}

// Option customises a Client at construction time.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// attached if the given client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithRefreshFunc overrides how the session is renewed. Mainly for tests.
func WithRefreshFunc(fn RefreshFunc) Option {
	return func(c *Client) { c.coord = NewCoordinator(fn) }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpc == nil {
		c.httpc = &http.Client{Timeout: defaultTimeout}
	}
	if c.httpc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("apiclient: cookie jar: %w", err)
		}
		c.httpc.Jar = jar
	}
	if c.coord == nil {
		c.coord = NewCoordinator(c.refreshSession)
	}
	return c, nil
}

// Authenticated reports whether the client believes it holds a live session.
func (c *Client) Authenticated() bool {
	return c.coord.Authenticated()
}

// Do performs a request against the API. On a 401 the session is refreshed
// (at most one refresh runs at a time, shared by all concurrent callers) and
// the request is replayed exactly once; a 401 on the replay is returned
// as-is. The caller owns the response body.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if err := c.coord.AwaitRefresh(ctx); err != nil {
		return nil, fmt.Errorf("apiclient: session refresh: %w", err)
	}
	return c.send(ctx, method, path, body)
}

// DoJSON performs a request and decodes a 2xx response body into out.
// Non-2xx responses are returned as an *APIError.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

// Register creates an account and establishes a session.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	payload := map[string]string{"name": name, "email": email, "password": password}
	if err := c.DoJSON(ctx, http.MethodPost, "/api/auth/register", payload, nil); err != nil {
		return err
	}
	c.coord.SetAuthenticated(true)
	return nil
}

// Login establishes a session for an existing account.
func (c *Client) Login(ctx context.Context, email, password string) error {
	payload := map[string]string{"email": email, "password": password}
	if err := c.DoJSON(ctx, http.MethodPost, "/api/auth/login", payload, nil); err != nil {
		return err
	}
	c.coord.SetAuthenticated(true)
	return nil
}

// Logout ends the session. Local state is cleared even if the call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.DoJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.coord.SetAuthenticated(false)
	return err
}

// send builds a fresh request per attempt so replays never reuse a
// consumed body.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpc.Do(req)
}

// refreshSession is the default RefreshFunc: it calls the refresh endpoint
// and treats any non-200 as a dead session.
func (c *Client) refreshSession(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodPost, "/api/auth/refresh-token", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}
	return nil
}

// APIError is a non-2xx response decoded from the API's error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: status %d: %s", e.StatusCode, e.Message)
}

func newAPIError(resp *http.Response) *APIError {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	if envelope.Message == "" {
		envelope.Message = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
}
