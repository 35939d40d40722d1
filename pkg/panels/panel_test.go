package panels_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/panels"
	"github.com/aretw0/folio/pkg/portfolio"
)

func TestPanel_Render(t *testing.T) {
	doc := core.NewDocument()
	doc.Collections["courses"] = []core.Item{{
		"_id":          "1",
		"title":        "Go",
		"image":        "http://img",
		"technologies": []any{"Go", "SQL"},
	}}
	p := panels.Panel{Title: "Courses", Kind: portfolio.CourseKind}

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf, core.Snapshot{Document: doc}))

	out := buf.String()
	assert.Contains(t, out, "== Courses (1)")
	assert.Contains(t, out, "- [1]")
	assert.Contains(t, out, "imageURL: http://img")
	assert.Contains(t, out, "technologies: Go, SQL")
	assert.NotContains(t, out, "description")
}

func TestPanel_RenderWithoutDocument(t *testing.T) {
	p := panels.Panel{Title: "Courses", Kind: portfolio.CourseKind}

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf, core.Snapshot{Loading: true}))
	assert.Equal(t, "loading...\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Render(&buf, core.Snapshot{}))
	assert.Equal(t, "Courses: no data\n", buf.String())
}

func TestSummary(t *testing.T) {
	doc := core.NewDocument()
	doc.Collections["courses"] = []core.Item{{}, {}}
	doc.Collections["abouts"] = []core.Item{{}}

	var buf bytes.Buffer
	require.NoError(t, panels.Summary(&buf, core.Snapshot{Document: doc}))
	assert.Equal(t, "abouts       1\ncourses      2\n", buf.String())
}
