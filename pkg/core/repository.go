package core

import "context"

// API defines the contract for the remote portfolio API.
// Adhering to this interface keeps the sync core independent of the transport.
type API interface {
	// FetchDocument retrieves the full portfolio document.
	FetchDocument(ctx context.Context) (*Document, error)

	// Create adds a new item of the given entity kind. The payload carries no identity.
	Create(ctx context.Context, entity string, payload Item) (Envelope, error)

	// Update replaces the fields of an existing item. The payload carries the identity.
	Update(ctx context.Context, entity string, payload Item) (Envelope, error)

	// Delete removes an item by its identity.
	Delete(ctx context.Context, entity string, id string) (Envelope, error)
}

// Notifier surfaces transient, user-visible notifications.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// NopNotifier discards every notification.
var NopNotifier Notifier = nopNotifier{}
