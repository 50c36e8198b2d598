// Package api implements the HTTP client wrapper for the Sonata platform REST API.
//
// The client attaches the operator's bearer token, enforces a request rate
// limit, and decodes the platform's JSON envelopes. Non-2xx responses are
// converted into a typed [*APIError] wrapping the shared sentinel errors so
// callers can dispatch with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/sonatafm/podium/internal/shared"
	"golang.org/x/time/rate"
)

// TokenProvider yields the current bearer token, or "" when the operator is
// not logged in.
type TokenProvider func() string

// Client issues authenticated JSON requests against the platform API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenProvider
	limiter    *rate.Limiter
	logger     *log.Logger
}

// ClientOpts contains configuration options for creating a Client.
type ClientOpts struct {
	BaseURL           string
	HTTPClient        *http.Client
	Token             TokenProvider
	RequestsPerSecond float64
	Logger            *log.Logger
}

// NewClient creates a new platform API client.
func NewClient(opts ClientOpts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8000/api/v1"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Token == nil {
		opts.Token = func() string { return "" }
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 8
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
		token:      opts.Token,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), int(opts.RequestsPerSecond)),
		logger:     opts.Logger,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// do performs a rate-limited, authenticated request and decodes the JSON
// response into result when result is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(method, path, resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// doJSON marshals payload and performs a request with a JSON body.
func (c *Client) doJSON(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", result)
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", result)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, payload, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, payload, result)
}

// Patch performs a PATCH request with a JSON body. Used for partial updates.
func (c *Client) Patch(ctx context.Context, path string, payload, result any) error {
	return c.doJSON(ctx, http.MethodPatch, path, payload, result)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, payload, result any) error {
	return c.doJSON(ctx, http.MethodPut, path, payload, result)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil)
}

// apiError converts a non-2xx response into a typed error.
func (c *Client) apiError(method, path string, resp *http.Response) error {
	detail := decodeDetail(resp.Body)
	c.logger.Debug("api error", "method", method, "path", path, "status", resp.StatusCode, "detail", detail)

	apiErr := &APIError{StatusCode: resp.StatusCode, Detail: detail}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", shared.ErrNotFound, apiErr)
	default:
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, apiErr)
	}
}

// decodeDetail extracts the platform's error message from an error body.
func decodeDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var envelope struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Detail != "" {
			return envelope.Detail
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return ""
}

// Query builds an encoded query string from the given parameters, sorted for
// stable cache keys. Returns "" for an empty set.
func Query(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
