// Package httpapi implements core.API over the portfolio REST endpoints.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/folio/pkg/core"
)

const (
	DefaultBaseURL = "http://localhost:5000/api/portfolio"
	DefaultTimeout = 30 * time.Second

	fetchEndpoint   = "get-portfolio-data"
	requestIDHeader = "X-Request-ID"
	maxErrorBody    = 512
)

// Config holds the configuration for the HTTP client.
type Config struct {
	BaseURL    string        // e.g. "https://example.com/api/portfolio"
	Token      string        // sent as a bearer token when set
	Timeout    time.Duration // zero means 30s
	Logger     *slog.Logger
	HTTPClient *http.Client // overrides Timeout when set
}

// Client is a thin transport for the portfolio API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger

	mu       sync.Mutex
	requests int
	faults   int
	lastID   string
}

// NewClient creates a new API client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		token:      config.Token,
		httpClient: httpClient,
		logger:     config.Logger,
	}
}

// FetchDocument retrieves the raw portfolio document.
func (c *Client) FetchDocument(ctx context.Context) (*core.Document, error) {
	resp, err := c.do(ctx, http.MethodGet, fetchEndpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc core.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, c.fault(fetchEndpoint, resp.StatusCode, fmt.Errorf("decode document: %w", err))
	}
	return &doc, nil
}

// Create posts a new item to add-<entity>.
func (c *Client) Create(ctx context.Context, entity string, payload core.Item) (core.Envelope, error) {
	return c.mutate(ctx, http.MethodPost, "add-"+entity, payload)
}

// Update puts the item, identity included, to update-<entity>.
func (c *Client) Update(ctx context.Context, entity string, payload core.Item) (core.Envelope, error) {
	return c.mutate(ctx, http.MethodPut, "update-"+entity, payload)
}

// Delete sends the identity to delete-<entity>.
func (c *Client) Delete(ctx context.Context, entity string, id string) (core.Envelope, error) {
	return c.mutate(ctx, http.MethodDelete, "delete-"+entity, core.Item{core.IDKey: id})
}

// mutate returns an envelope for every normal response, success or not.
// Only failures outside the envelope become a TransportFault.
func (c *Client) mutate(ctx context.Context, method, endpoint string, payload core.Item) (core.Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return core.Envelope{}, fmt.Errorf("encode %s payload: %w", endpoint, err)
	}

	resp, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return core.Envelope{}, err
	}
	defer resp.Body.Close()

	var env core.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return core.Envelope{}, c.fault(endpoint, resp.StatusCode, fmt.Errorf("decode envelope: %w", err))
	}
	return env, nil
}

// do issues the request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	url := c.baseURL + "/" + endpoint
	requestID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.mu.Lock()
	c.requests++
	c.lastID = requestID
	c.mu.Unlock()

	start := time.Now()
	c.logger.Debug("api request", "method", method, "url", url, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.fault(endpoint, 0, err)
	}

	c.logger.Debug("api response", "method", method, "url", url, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		return nil, c.fault(endpoint, resp.StatusCode, statusError(resp.StatusCode, snippet))
	}
	return resp, nil
}

func (c *Client) fault(op string, status int, err error) error {
	c.mu.Lock()
	c.faults++
	c.mu.Unlock()
	return &core.TransportFault{Op: op, Status: status, Err: err}
}

func statusError(status int, body []byte) error {
	text := strings.TrimSpace(string(body))
	// Servers often answer errors with the same envelope; prefer its message.
	var env core.Envelope
	if json.Unmarshal(body, &env) == nil && env.Message != "" {
		text = env.Message
	}
	if text == "" {
		text = http.StatusText(status)
	}
	return errors.New(text)
}

var _ core.API = (*Client)(nil)
