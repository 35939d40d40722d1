package typed

import (
	"context"
	"errors"
	"sync"

	"github.com/aretw0/folio/pkg/core"
)

// ErrEditorClosed is returned when submitting an editor that was closed or cancelled.
var ErrEditorClosed = errors.New("editor is closed")

// Mode tells whether an editor creates a new item or edits an existing one.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// Editor is one add/edit session of an entity kind. It closes itself after
// a successful submit and stays open, with its input intact, after a failure.
type Editor[T any] struct {
	repo *Repository[T]

	mu       sync.Mutex
	open     bool
	selected string // identity of the item being edited; empty in add mode
	form     Form
}

// NewEditor opens an empty editor in add mode.
func (r *Repository[T]) NewEditor() *Editor[T] {
	return &Editor[T]{repo: r, open: true, form: Form{}}
}

// Edit opens an editor pre-filled from item. List fields are joined for display.
func (r *Repository[T]) Edit(item core.Item) *Editor[T] {
	return &Editor[T]{
		repo:     r,
		open:     true,
		selected: item.ID(),
		form:     r.kind.Form(item),
	}
}

// Mode reports whether the editor adds or edits.
func (e *Editor[T]) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected != "" {
		return ModeEdit
	}
	return ModeAdd
}

// Open reports whether the editor is still active.
func (e *Editor[T]) Open() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Selected returns the identity of the item being edited.
func (e *Editor[T]) Selected() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Form returns a copy of the current input.
func (e *Editor[T]) Form() Form {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.form.Clone()
}

// Set changes one input value.
func (e *Editor[T]) Set(field, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.form[field] = value
}

// Submit sends the form to the create or update endpoint depending on the mode.
func (e *Editor[T]) Submit(ctx context.Context) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return ErrEditorClosed
	}
	selected, form := e.selected, e.form.Clone()
	e.mu.Unlock()

	var err error
	if selected != "" {
		err = e.repo.Update(ctx, selected, form)
	} else {
		err = e.repo.Create(ctx, form)
	}
	if err != nil {
		return err
	}

	e.close()
	return nil
}

// Cancel closes the editor without sending anything.
func (e *Editor[T]) Cancel() {
	e.close()
}

func (e *Editor[T]) close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
	e.selected = ""
	e.form = Form{}
}
