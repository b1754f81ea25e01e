// Package api provides the client for the job-board REST API.
// Every request carries the session's bearer token; responses are unwrapped from the
// API's inconsistent envelopes before decoding.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joblify/employer-console/internal/auth"
)

// DefaultBaseURL is the production API base URL.
const DefaultBaseURL = "https://workky-backend.vercel.app/api"

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "joblify-employer-console/1.0"

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// DefaultOptions returns sensible defaults for the client.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to the job-board REST API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	auth       auth.Context
	userAgent  string
	logger     *slog.Logger
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, ac auth.Context, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if ac == nil {
		ac = auth.NewSession("")
	}

	return &Client{
		baseURL:    parsed,
		httpClient: httpClient,
		auth:       ac,
		userAgent:  userAgent,
		logger:     logger,
	}, nil
}

// Auth returns the client's authentication context.
func (c *Client) Auth() auth.Context {
	return c.auth
}

// do sends a request and returns the raw response body of a successful call.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	endpoint := c.baseURL.String() + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Method: method, Path: path, Message: "failed to encode request body", Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &Error{Method: method, Path: path, Message: "failed to create request", Cause: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.auth.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, &Error{Method: method, Path: path, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Method: method, Path: path, Status: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode >= 400 {
		return nil, newStatusError(method, path, resp.StatusCode, data)
	}
	return data, nil
}

// escape path-escapes an id taken from user input or a URL.
func escape(id string) string {
	return url.PathEscape(id)
}
