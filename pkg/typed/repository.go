package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/folio/pkg/core"
)

// Model pairs a typed entity with its identity and wire form.
type Model[T any] struct {
	ID   string
	Data T         // The typed entity
	Raw  core.Item // The item as the server returned it
}

// Repository is the mutation lifecycle of one entity kind, plus typed read access
// to its collection. T is the struct the collection items decode into.
type Repository[T any] struct {
	svc  *core.Service
	kind Kind
}

// NewRepository creates a repository for kind on top of an existing service.
func NewRepository[T any](svc *core.Service, kind Kind) *Repository[T] {
	return &Repository[T]{svc: svc, kind: kind}
}

// Kind returns the entity kind served by the repository.
func (r *Repository[T]) Kind() Kind {
	return r.kind
}

// Create validates form, sends it to the create endpoint and, on success, requests a reload.
func (r *Repository[T]) Create(ctx context.Context, form Form) error {
	if r.kind.Singleton {
		return fmt.Errorf("%s is update-only", r.kind.Entity)
	}
	payload, err := r.kind.Payload(form)
	if err != nil {
		return err
	}
	_, err = r.svc.Mutate(ctx, core.Mutation{
		Type:       core.EventCreate,
		Entity:     r.kind.Entity,
		Collection: r.kind.Collection,
		Payload:    payload,
	})
	return err
}

// Update validates form and sends it, together with id, to the update endpoint.
func (r *Repository[T]) Update(ctx context.Context, id string, form Form) error {
	if id == "" {
		return core.ErrMissingID
	}
	payload, err := r.kind.Payload(form)
	if err != nil {
		return err
	}
	_, err = r.svc.Mutate(ctx, core.Mutation{
		Type:       core.EventUpdate,
		Entity:     r.kind.Entity,
		Collection: r.kind.Collection,
		ID:         id,
		Payload:    payload,
	})
	return err
}

// Delete removes the item with the given id.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	if r.kind.Singleton {
		return fmt.Errorf("%s is update-only", r.kind.Entity)
	}
	if id == "" {
		return core.ErrMissingID
	}
	_, err := r.svc.Mutate(ctx, core.Mutation{
		Type:       core.EventDelete,
		Entity:     r.kind.Entity,
		Collection: r.kind.Collection,
		ID:         id,
	})
	return err
}

// Items returns the raw items of the collection from the current document.
func (r *Repository[T]) Items() []core.Item {
	return r.svc.Snapshot().Document.Collection(r.kind.Collection)
}

// List returns the collection converted to the typed model, in document order.
func (r *Repository[T]) List() ([]*Model[T], error) {
	items := r.Items()
	result := make([]*Model[T], 0, len(items))
	for _, item := range items {
		model, err := fromItem[T](item)
		if err != nil {
			return nil, fmt.Errorf("failed to process %s %s: %w", r.kind.Entity, item.ID(), err)
		}
		result = append(result, model)
	}
	return result, nil
}

// Get returns the item with the given id from the current document.
func (r *Repository[T]) Get(id string) (*Model[T], error) {
	for _, item := range r.Items() {
		if item.ID() == id {
			return fromItem[T](item)
		}
	}
	return nil, fmt.Errorf("%s %q not found", r.kind.Entity, id)
}

// Helper to convert a wire item into the typed model.
func fromItem[T any](item core.Item) (*Model[T], error) {
	dataBytes, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("item marshal failed: %w", err)
	}

	var data T
	if err := json.Unmarshal(dataBytes, &data); err != nil {
		return nil, fmt.Errorf("unmarshal to target type failed: %w", err)
	}

	return &Model[T]{
		ID:   item.ID(),
		Data: data,
		Raw:  item,
	}, nil
}
