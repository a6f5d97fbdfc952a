// Package client is a thin typed wrapper around the Lunchmap REST API.
// It serializes requests, decodes responses and turns every failure into an
// error matching domain.ErrTransport. It does not retry; timeouts belong to
// the *http.Client it is given.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/lunchmap/internal/domain"
)

// Client calls the shop API rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// New constructs a Client. A nil httpClient falls back to http.DefaultClient
// and a nil logger to slog.Default().
func New(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     logger,
	}
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// shopPath renders /api/shops/{id}[suffix] with id escaped as an OpenAPI
// "simple" path parameter. An empty id names no shop and is rejected with
// domain.ErrNotFound before any request is made.
func shopPath(id, suffix string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty shop id", domain.ErrNotFound)
	}
	p, err := runtime.StyleParamWithLocation("simple", false, "id", runtime.ParamLocationPath, id)
	if err != nil {
		return "", fmt.Errorf("encode shop id: %w", err)
	}
	return "/api/shops/" + p + suffix, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do sends req and returns the full response body for any 2xx status.
// Non-2xx responses become *StatusError; everything else is wrapped with
// domain.ErrTransport.
func (c *Client) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(req.Context(), "api request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	c.log.DebugContext(req.Context(), "api request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %w", domain.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(resp.StatusCode, b)
	}
	return b, nil
}

// call performs a request and decodes a JSON object response into out.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	b, err := c.do(req)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrTransport, err)
	}
	return nil
}

// list performs a GET and decodes a JSON array. An empty body or a JSON null
// yields an empty, non-nil slice.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	b, err := c.do(req)
	if err != nil {
		return nil, err
	}

	out := []T{}
	if len(bytes.TrimSpace(b)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrTransport, err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
