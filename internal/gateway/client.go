// Package gateway is the HTTP client for the league management backend. Every
// remote operation the front-end needs goes through here, and every non-2xx
// response is normalized into an *APIError carrying the backend's single
// error-message envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// genericErrorMessage stands in when the backend's error envelope is missing
// or unreadable.
const genericErrorMessage = "An error occurred"

// APIError is a failure reported by the backend. The front-end treats every
// failure uniformly as its message string; the status code is kept for
// logging and the occasional not-found check.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// Client talks to one backend host.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the given backend base URL, e.g.
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithHTTPClient allows callers to supply the underlying HTTP client,
// mainly for tests.
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	client := New(baseURL)
	if httpClient != nil {
		client.http = httpClient
	}
	return client
}

// BaseURL exposes the backend host, used to resolve relative upload paths
// such as team logos.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dst any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req, dst)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, dst any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req, dst)
}

func (c *Client) do(req *http.Request, dst any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}

	if dst == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding backend response: %w", err)
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: genericErrorMessage}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}
	return apiErr
}

func idQuery(key string, id int64) url.Values {
	query := url.Values{}
	query.Set(key, strconv.FormatInt(id, 10))
	return query
}
