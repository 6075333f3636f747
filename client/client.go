// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/polycanvas/geometry"
	"github.com/danielhkuo/polycanvas/models"
)

// DefaultTimeout bounds a single request when the caller's context has no
// deadline of its own.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// ErrNotFound is returned when the server reports 404 for a polygon.
var ErrNotFound = errors.New("polygon not found")

// APIError is a non-2xx response from the polygon API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client talks to the polygon HTTP API. It satisfies the editor's CRUD
// collaborator.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL. A nil httpClient uses
// one with DefaultTimeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: u.String(), http: httpClient}, nil
}

// List fetches every stored polygon in insertion order.
func (c *Client) List(ctx context.Context) ([]models.Polygon, error) {
	var polygons []models.Polygon
	if err := c.do(ctx, http.MethodGet, "/api/polygons", nil, &polygons); err != nil {
		return nil, err
	}
	if polygons == nil {
		polygons = []models.Polygon{}
	}
	return geometry.NormalizeAll(polygons), nil
}

// Create stores a new polygon and returns it with its server id.
func (c *Client) Create(ctx context.Context, name string, points []models.Point) (models.Polygon, error) {
	req := models.CreatePolygonRequest{Name: name, Points: points}

	var created models.Polygon
	if err := c.do(ctx, http.MethodPost, "/api/polygons", req, &created); err != nil {
		return models.Polygon{}, err
	}
	if created.ID == "" {
		return models.Polygon{}, fmt.Errorf("create polygon: response has no id")
	}
	return geometry.Normalize(created), nil
}

// Delete removes a polygon. A 404 is reported as ErrNotFound.
func (c *Client) Delete(ctx context.Context, id string) (bool, error) {
	var resp models.DeletePolygonResponse
	if err := c.do(ctx, http.MethodDelete, "/api/polygons/"+url.PathEscape(id), nil, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// decodeError prefers the server's message, then its error title, then the
// status text.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body models.ErrorResponse
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = firstNonEmpty(body.Message, body.Error)
	}
	if apiErr.Message == "" {
		apiErr.Message = firstNonEmpty(strings.TrimSpace(string(raw)), http.StatusText(resp.StatusCode))
	}
	return apiErr
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
