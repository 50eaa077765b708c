package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/view"
)

func TestREPL_Session(t *testing.T) {
	ctx := context.Background()
	board := view.NewBoard()

	w, err := notepad.NewWriter(ctx, t.Name(),
		notepad.WithAdapter("memory"),
		notepad.WithSurfaces(board),
	)
	require.NoError(t, err)

	in := strings.NewReader(strings.Join([]string{
		"add",
		"add",
		`edit note-1 buy milk\nand eggs`,
		"rm note-2",
		"edit note-9 nothing",
		"ls",
		"quit",
		"add",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, repl(ctx, in, &out, w, board))

	assert.Equal(t, core.Snapshot{{ID: "note-1", Content: "buy milk\nand eggs"}}, w.Snapshot())
	assert.Equal(t, []string{"note-1"}, board.IDs())
	assert.Contains(t, out.String(), "no such note: note-9")
	assert.Contains(t, out.String(), "[note-1]\n  buy milk\n  and eggs\n")

	store, err := notepad.Open(t.Name(), notepad.WithAdapter("memory"))
	require.NoError(t, err)
	assert.Equal(t, w.Snapshot(), store.Load(ctx))
}

func TestREPL_EndOfInput(t *testing.T) {
	ctx := context.Background()
	board := view.NewBoard()

	w, err := notepad.NewWriter(ctx, t.Name(),
		notepad.WithAdapter("memory"),
		notepad.WithSurfaces(board),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, repl(ctx, strings.NewReader("add\n"), &out, w, board))
	assert.Equal(t, []string{"note-1"}, w.IDs())
}
