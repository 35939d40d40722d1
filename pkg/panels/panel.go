// Package panels renders read-only views of the synchronized document.
// Panels only read snapshots; they never write store state.
package panels

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/typed"
)

// Panel renders one collection of the document.
type Panel struct {
	Title string
	Kind  typed.Kind
}

// Render writes the panel for the given snapshot. A loading snapshot without
// a document renders the loading indicator only.
func (p Panel) Render(w io.Writer, snap core.Snapshot) error {
	if snap.Document == nil {
		if snap.Loading {
			_, err := fmt.Fprintln(w, "loading...")
			return err
		}
		_, err := fmt.Fprintf(w, "%s: no data\n", p.Title)
		return err
	}

	items := snap.Document.Collection(p.Kind.Collection)
	if _, err := fmt.Fprintf(w, "== %s (%d)\n", p.Title, len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := p.renderItem(w, item); err != nil {
			return err
		}
	}
	return nil
}

func (p Panel) renderItem(w io.Writer, item core.Item) error {
	form := p.Kind.Form(item)
	var b strings.Builder
	fmt.Fprintf(&b, "- [%s]", item.ID())
	for _, f := range p.Kind.Fields {
		v := form[f.Name]
		if v == "" {
			continue
		}
		fmt.Fprintf(&b, "\n    %s: %s", f.Name, v)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// Summary writes one line per collection with its item count.
func Summary(w io.Writer, snap core.Snapshot) error {
	if snap.Document == nil {
		_, err := fmt.Fprintln(w, "no data")
		return err
	}
	for _, name := range snap.Document.Names() {
		if _, err := fmt.Fprintf(w, "%-12s %d\n", name, len(snap.Document.Collection(name))); err != nil {
			return err
		}
	}
	return nil
}
