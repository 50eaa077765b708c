package view_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/view"
)

func TestProject(t *testing.T) {
	fields := view.Project(core.Snapshot{
		{ID: "note-1", Content: "hello"},
		{ID: "note-2"},
	}, true)

	assert.Equal(t, []core.Field{
		{Name: "textareanote-1", ID: "note-1", Text: "hello", ReadOnly: true},
		{Name: "textareanote-2", ID: "note-2", Text: "", ReadOnly: true},
	}, fields)

	assert.Empty(t, view.Project(nil, true))
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := view.NewTextRenderer(&buf)

	r.Render(view.Project(core.Snapshot{{ID: "note-1", Content: "a\nb"}}, true))
	assert.Equal(t, "[note-1]\n  a\n  b\n", buf.String())

	buf.Reset()
	r.Render(nil)
	assert.Equal(t, "(no notes)\n", buf.String())
}

func TestBoard_ReadOnlySurfaceRejectsTyping(t *testing.T) {
	b := view.NewBoard()
	s := b.Create("note-1", "fixed", true, nil).(*view.Surface)

	assert.False(t, s.Type("changed"))
	assert.Equal(t, "fixed", s.Text())

	s.PressRemove()
	s.Destroy()
	assert.Empty(t, b.IDs())
}
