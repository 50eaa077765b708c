package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/notepad/pkg/view"
)

func TestNote_ReleaseKeepsLastText(t *testing.T) {
	board := view.NewBoard()
	n := New("note-1", "draft")
	n.Render(board, nil)
	assert.True(t, n.Rendered())

	s, _ := board.Lookup("note-1")
	s.Type("final")
	n.Release()

	assert.False(t, n.Rendered())
	assert.Equal(t, "final", n.Content())
	assert.Equal(t, 0, board.Len())
}

func TestNote_RenderWithoutFactory(t *testing.T) {
	n := New("note-1", "plain")
	n.Render(nil, nil)

	assert.False(t, n.Rendered())
	n.SetContent("changed")
	assert.Equal(t, "changed", n.Record().Content)
}
