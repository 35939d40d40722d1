package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Loaded          bool       `json:"loaded"`
	Collections     []string   `json:"collections,omitempty"`
	InFlight        int        `json:"in_flight"`
	ReloadRequested bool       `json:"reload_requested"`
	ReloadGen       uint64     `json:"reload_generation"`
	Subscribers     int        `json:"subscribers"`
	EventBufferSize int        `json:"event_buffer_size"`
	DroppedEvents   int        `json:"dropped_events"`
	LastReplace     *time.Time `json:"last_replace,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Loaded:          s.doc != nil,
		Collections:     s.doc.Names(),
		InFlight:        s.inflight,
		ReloadRequested: s.reload,
		ReloadGen:       s.reloadGen,
		Subscribers:     len(s.subs),
		EventBufferSize: s.eventBuffer,
		DroppedEvents:   s.dropped,
		LastReplace:     s.lastReplace,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

// ControllerState exposes the controller's fetch history.
type ControllerState struct {
	Running   bool       `json:"running"`
	Fetches   int        `json:"fetches"`
	Failures  int        `json:"failures"`
	LastFetch *time.Time `json:"last_fetch,omitempty"`
	LastError string     `json:"last_error,omitempty"`
	APIType   string     `json:"api_type"`
}

// State implements introspection.Introspectable.
func (c *Controller) State() any {
	c.mu.Lock()
	defer c.mu.Unlock()

	apiType := "unknown"
	if comp, ok := c.api.(introspection.Component); ok {
		apiType = comp.ComponentType()
	}

	st := ControllerState{
		Running:   c.cancel != nil,
		Fetches:   c.fetches,
		Failures:  c.failures,
		LastFetch: c.lastFetch,
		APIType:   apiType,
	}
	if c.lastErr != nil {
		st.LastError = c.lastErr.Error()
	}
	return st
}

// ComponentType implements introspection.Component.
func (c *Controller) ComponentType() string {
	return "sync-controller"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
var _ introspection.Introspectable = (*Controller)(nil)
var _ introspection.Component = (*Controller)(nil)
