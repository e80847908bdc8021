// Package searchclient talks to the backend search endpoint.
package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"invoicesearch/internal/domain"
)

// DefaultEndpoint is the local backend route the invoicing app ships with
const DefaultEndpoint = "http://127.0.0.1:5000/search"

var (
	ErrUnexpectedStatus  = errors.New("unexpected status from search backend")
	ErrMalformedResponse = errors.New("malformed search response")
)

// Client posts search requests to a single endpoint
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for endpoint, falling back to DefaultEndpoint
func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Search sends req and returns the rows found in the "result" key
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) ([]domain.ResultRow, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search %s.%s failed: %w", req.Table, req.Field, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var raw struct {
		Result []map[string]any `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if raw.Result == nil {
		return nil, fmt.Errorf("%w: missing result key", ErrMalformedResponse)
	}

	rows := make([]domain.ResultRow, 0, len(raw.Result))
	for _, r := range raw.Result {
		rows = append(rows, toRow(r))
	}
	return rows, nil
}

// toRow flattens scalar JSON values into strings
func toRow(raw map[string]any) domain.ResultRow {
	row := make(domain.ResultRow, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			row[k] = ""
		case string:
			row[k] = val
		case bool:
			row[k] = strconv.FormatBool(val)
		case float64:
			row[k] = strconv.FormatFloat(val, 'f', -1, 64)
		default:
			b, _ := json.Marshal(val)
			row[k] = string(b)
		}
	}
	return row
}
