package httpapi

import (
	"github.com/aretw0/introspection"
)

// ClientState exposes request counters for observability.
type ClientState struct {
	BaseURL       string `json:"base_url"`
	Authenticated bool   `json:"authenticated"`
	Requests      int    `json:"requests"`
	Faults        int    `json:"faults"`
	LastRequestID string `json:"last_request_id,omitempty"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ClientState{
		BaseURL:       c.baseURL,
		Authenticated: c.token != "",
		Requests:      c.requests,
		Faults:        c.faults,
		LastRequestID: c.lastID,
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "http-api"
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
