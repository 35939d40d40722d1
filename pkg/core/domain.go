// Document is the central entity of the domain.
package core

import (
	"encoding/json"
	"fmt"
	"sort"
)

// IDKey is the wire key holding the server-assigned identity of an item.
const IDKey = "_id"

// Item is one record inside a collection of the portfolio document.
// It is kept in its wire form so fields the client does not know about survive a fetch.
type Item map[string]any

// ID returns the server-assigned identity of the item, or "" if absent.
func (i Item) ID() string {
	switch v := i[IDKey].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Document is the portfolio record: a set of named, ordered collections.
// It is only ever replaced wholesale by a fetch.
type Document struct {
	Collections map[string][]Item
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{Collections: make(map[string][]Item)}
}

// Collection returns the ordered items stored under name.
func (d *Document) Collection(name string) []Item {
	if d == nil {
		return nil
	}
	return d.Collections[name]
}

// Names returns the collection keys in lexical order.
func (d *Document) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.Collections))
	for k := range d.Collections {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy so readers never share maps with the store.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return d.shallowClone()
	}
	var out Document
	if err := json.Unmarshal(raw, &out); err != nil {
		return d.shallowClone()
	}
	return &out
}

func (d *Document) shallowClone() *Document {
	out := NewDocument()
	for k, items := range d.Collections {
		cp := make([]Item, len(items))
		for i, it := range items {
			m := make(Item, len(it))
			for f, v := range it {
				m[f] = v
			}
			cp[i] = m
		}
		out.Collections[k] = cp
	}
	return out
}

// UnmarshalJSON accepts the raw document the API returns: an object whose
// array-valued keys are collections. Single objects are treated as one-item
// collections, everything else is ignored.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("document must be a JSON object: %w", err)
	}
	d.Collections = make(map[string][]Item, len(raw))
	for name, value := range raw {
		var items []Item
		if err := json.Unmarshal(value, &items); err == nil {
			if items == nil {
				items = []Item{}
			}
			d.Collections[name] = items
			continue
		}
		var single Item
		if err := json.Unmarshal(value, &single); err == nil && single != nil {
			d.Collections[name] = []Item{single}
		}
	}
	return nil
}

// MarshalJSON writes the document back in its wire shape.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.Collections == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(d.Collections)
}

// Envelope is the normalized response of every mutation endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// EventType represents the type of change observed by the store.
type EventType string

const (
	EventCreate      EventType = "CREATE"
	EventUpdate      EventType = "UPDATE"
	EventDelete      EventType = "DELETE"
	EventReload      EventType = "RELOAD"
	EventFetchFailed EventType = "FETCH_FAILED"
)

// Event represents a change in the synchronized document.
// Collection is empty for document-wide events (reload, fetch failure).
type Event struct {
	Type       EventType
	Collection string
	ID         string
	Timestamp  int64 // Unix timestamp
}

func (e Event) String() string {
	if e.Collection == "" {
		return string(e.Type)
	}
	if e.ID == "" {
		return fmt.Sprintf("%s %s", e.Type, e.Collection)
	}
	return fmt.Sprintf("%s %s/%s", e.Type, e.Collection, e.ID)
}
