package typed

import (
	"fmt"
	"strings"

	"github.com/aretw0/folio/pkg/core"
)

// ListSeparator joins list-valued fields when pre-filling a form.
const ListSeparator = ", "

// Form holds editor input exactly as typed: every value is a string,
// list-valued fields are delimited text.
type Form map[string]string

// Clone returns a copy of the form.
func (f Form) Clone() Form {
	out := make(Form, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Field describes one form input of an entity kind.
type Field struct {
	Name     string // form key, e.g. "imageURL"
	Wire     string // payload key, e.g. "image"; defaults to Name
	Required bool
	List     bool // comma-delimited in the form, a string sequence on the wire
}

func (f Field) wire() string {
	if f.Wire == "" {
		return f.Name
	}
	return f.Wire
}

// Kind describes one entity collection of the portfolio document and the endpoints that edit it.
type Kind struct {
	Entity     string // endpoint suffix: add-<Entity>, update-<Entity>, delete-<Entity>
	Collection string // document key
	Fields     []Field
	// Singleton kinds hold exactly one server-created item and only support update.
	Singleton bool
}

// Validate reports required fields that are empty or blank.
func (k Kind) Validate(form Form) error {
	var missing []string
	for _, f := range k.Fields {
		if f.Required && strings.TrimSpace(form[f.Name]) == "" {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &core.ValidationGap{Kind: k.Entity, Missing: missing}
	}
	return nil
}

// Payload converts form input into the wire payload. List fields are always
// present, as an empty sequence when left blank. Form keys the kind does
// not declare are not sent.
func (k Kind) Payload(form Form) (core.Item, error) {
	if err := k.Validate(form); err != nil {
		return nil, err
	}
	payload := make(core.Item, len(k.Fields))
	for _, f := range k.Fields {
		v, ok := form[f.Name]
		if f.List {
			payload[f.wire()] = SplitList(v)
			continue
		}
		if ok {
			payload[f.wire()] = v
		}
	}
	return payload, nil
}

// Form converts a stored item back into editor input.
func (k Kind) Form(item core.Item) Form {
	form := make(Form, len(k.Fields))
	for _, f := range k.Fields {
		v := item[f.wire()]
		if f.List {
			form[f.Name] = JoinList(toStrings(v))
			continue
		}
		switch val := v.(type) {
		case nil:
			form[f.Name] = ""
		case string:
			form[f.Name] = val
		default:
			form[f.Name] = fmt.Sprint(val)
		}
	}
	return form
}

// Field returns the field declared under name.
func (k Kind) Field(name string) (Field, bool) {
	for _, f := range k.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SplitList turns delimited input into trimmed, non-empty tokens.
// Blank input yields an empty, non-nil sequence.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// JoinList renders tokens for display in a form.
func JoinList(tokens []string) string {
	return strings.Join(tokens, ListSeparator)
}

func toStrings(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			} else if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
		return out
	case string:
		return SplitList(val)
	}
	return nil
}
