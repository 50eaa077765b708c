package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/lifecycle"
	"github.com/aretw0/notepad/pkg/core"
)

func TestSource_RelaysChanges(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	in := make(chan core.Event, 3)
	src := lifecycle.NewSource(in)
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Key: "notepad.notes", Raw: []byte(`[{"id":"note-1","content":"a"}]`)}
	in <- core.Event{Key: "notepad.notes", Raw: []byte(`not json`)}
	in <- core.Event{Key: "notepad.notes"}

	want := []struct {
		notes  int
		suffix string
	}{
		{notes: 1, suffix: ": 1 notes"},
		{notes: -1, suffix: ": unreadable value"},
		{notes: 0, suffix: ": 0 notes"},
	}
	for _, w := range want {
		select {
		case e := <-src.Events():
			change, ok := e.(lifecycle.Change)
			require.True(t, ok)
			assert.Equal(t, "notepad.notes", change.Key)
			assert.Equal(t, w.notes, change.Notes)
			assert.Contains(t, e.String(), w.suffix)
		case <-ctx.Done():
			t.Fatal("timed out waiting for event")
		}
	}

	close(in)
	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-ctx.Done():
		t.Fatal("source did not close")
	}
}

func TestSource_StartsOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := lifecycle.NewSource(make(chan core.Event))
	require.NoError(t, src.Start(ctx))
	assert.Error(t, src.Start(ctx))
}

func TestSource_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := lifecycle.NewSource(make(chan core.Event))
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("source did not close")
	}
}
