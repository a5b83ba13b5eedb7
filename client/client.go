// Package client implements the WellPath API client: authenticated and
// unauthenticated JSON HTTP calls against a single configured base URL,
// with a uniform error taxonomy and typed endpoint methods.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"time"
)

// DefaultBaseURL is the production API endpoint, used when no base URL is
// configured.
const DefaultBaseURL = "https://wellpath.jcarver.dev/api"

// TokenSource yields the current session key for outgoing requests.
// session.Manager satisfies this interface.
type TokenSource interface {
	SessionKey() (string, bool)
}

// Client performs JSON HTTP calls against the WellPath API. Each call is
// independent and stateless; the client performs no caching, aggregation
// or retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the source of session keys for authenticated
// requests. Without one, authenticated requests are sent bare and the
// server decides whether to reject them.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUserAgent overrides the User-Agent header value.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the given base URL. An empty baseURL selects
// DefaultBaseURL; a trailing slash is trimmed so endpoint resolution never
// doubles separators.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  fmt.Sprintf("WellPath Client / Go / %s", runtime.GOOS),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// resolveEndpoint joins the base URL and an endpoint path with exactly one
// separating slash.
func (c *Client) resolveEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "/") {
		return c.baseURL + endpoint
	}
	return c.baseURL + "/" + endpoint
}

// do issues one request. A JSON body is attached when body is non-nil;
// the Authorization header is attached when authenticated is true and the
// token source yields a key. The caller owns the response body.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, authenticated bool) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveEndpoint(endpoint), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/json")
	if authenticated && c.tokens != nil {
		if key, ok := c.tokens.SessionKey(); ok {
			req.Header.Set("Authorization", "Session "+key)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request %s: %w", endpoint, err)
	}

	if requestID := resp.Header.Get("X-Request-Id"); requestID != "" {
		c.logger.Debug("api response", "endpoint", endpoint, "status", resp.StatusCode, "request_id", requestID)
	} else {
		c.logger.Debug("api response", "endpoint", endpoint, "status", resp.StatusCode)
	}
	return resp, nil
}

// getJSON performs a GET and decodes a 2xx JSON body into out. Any non-2xx
// status is a hard failure.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any, authenticated bool) error {
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, authenticated)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		drain(resp.Body)
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	return decodeJSON(resp.Body, endpoint, out)
}

// postJSON performs a POST with a JSON body and decodes a 2xx JSON
// response into out. Any non-2xx status is a hard failure.
func (c *Client) postJSON(ctx context.Context, endpoint string, body, out any, authenticated bool) error {
	resp, err := c.do(ctx, http.MethodPost, endpoint, body, authenticated)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		drain(resp.Body)
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	return decodeJSON(resp.Body, endpoint, out)
}

// fetchOptional performs an authenticated GET where 404 is a distinguished
// not-found outcome rather than an error.
func fetchOptional[T any](ctx context.Context, c *Client, endpoint string) (T, bool, error) {
	var zero T
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, true)
	if err != nil {
		return zero, false, err
	}
	defer resp.Body.Close()

	switch {
	case is2xx(resp.StatusCode):
		var out T
		if err := decodeJSON(resp.Body, endpoint, &out); err != nil {
			return zero, false, err
		}
		return out, true, nil
	case resp.StatusCode == http.StatusNotFound:
		drain(resp.Body)
		return zero, false, nil
	default:
		drain(resp.Body)
		return zero, false, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
}

func decodeJSON(r io.Reader, endpoint string, out any) error {
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

// drain discards the remaining body so the connection can be reused.
func drain(r io.Reader) {
	io.Copy(io.Discard, io.LimitReader(r, 1<<16))
}
