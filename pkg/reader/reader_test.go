package reader_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/memory"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/reader"
	"github.com/aretw0/notepad/pkg/writer"
)

func newStore(t *testing.T, b core.Backend) *core.Store {
	t.Helper()
	s, err := core.NewStore(b, core.DefaultKey, nil)
	require.NoError(t, err)
	return s
}

// recorder collects rendered views.
type recorder struct {
	mu    sync.Mutex
	views [][]core.Field
}

func (r *recorder) Render(fields []core.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, fields)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *recorder) last() []core.Field {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.views) == 0 {
		return nil
	}
	return r.views[len(r.views)-1]
}

// pollOnly hides the memory backend's push support.
type pollOnly struct {
	b *memory.Backend
}

func (p pollOnly) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.b.Get(ctx, key)
}

func (p pollOnly) Set(ctx context.Context, key string, value []byte) error {
	return p.b.Set(ctx, key, value)
}

func TestReader_PollTwiceRendersOnce(t *testing.T) {
	ctx := context.Background()
	b := memory.New(memory.Config{})
	require.NoError(t, b.Set(ctx, core.DefaultKey, []byte(`[{"id":"note-1","content":"hello"}]`)))

	rec := &recorder{}
	var labels []string
	r := reader.New(newStore(t, b),
		reader.WithRenderer(rec),
		reader.WithStatus(func(s string) { labels = append(labels, s) }),
		reader.WithClock(func() time.Time { return time.Date(2026, 1, 1, 9, 5, 0, 0, time.UTC) }),
	)

	require.NoError(t, r.Poll(ctx))
	require.NoError(t, r.Poll(ctx))

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, 1, r.Renders())
	assert.Equal(t, []string{"updated at 9:05:00 AM", "updated at 9:05:00 AM"}, labels)
}

func TestReader_WriterScenario(t *testing.T) {
	ctx := context.Background()
	b := memory.New(memory.Config{})
	w := writer.New(newStore(t, b))
	require.NoError(t, w.Load(ctx))
	r := reader.New(newStore(t, b))

	id := w.Add(ctx)
	require.Equal(t, "note-1", id)
	require.NoError(t, w.Edit(ctx, id, "hello"))
	require.NoError(t, w.Autosave(ctx))

	require.NoError(t, r.Poll(ctx))
	assert.Equal(t, []core.Field{{Name: "textareanote-1", ID: "note-1", Text: "hello", ReadOnly: true}}, r.Fields())

	w.Remove(ctx, id)
	require.NoError(t, r.Poll(ctx))
	assert.Empty(t, r.Fields())
	assert.Equal(t, 2, r.Renders())
}

func TestReader_MalformedAndMissingValues(t *testing.T) {
	ctx := context.Background()
	b := memory.New(memory.Config{})
	rec := &recorder{}
	r := reader.New(newStore(t, b), reader.WithRenderer(rec))

	// Missing key renders an empty view once.
	require.NoError(t, r.Poll(ctx))
	require.Equal(t, 1, rec.count())
	assert.Empty(t, rec.last())

	require.NoError(t, b.Set(ctx, core.DefaultKey, []byte("not json")))
	require.NoError(t, r.Poll(ctx))
	assert.Equal(t, 2, rec.count())
	assert.Empty(t, rec.last())

	require.NoError(t, b.Set(ctx, core.DefaultKey, []byte(`{"id":"note-1"}`)))
	require.NoError(t, r.Poll(ctx))
	assert.Empty(t, rec.last())
}

func TestReader_DeliverUsesEventValue(t *testing.T) {
	b := memory.New(memory.Config{})
	rec := &recorder{}
	r := reader.New(newStore(t, b), reader.WithRenderer(rec))

	assert.False(t, r.Deliver(core.Event{Key: "someone.else", Raw: []byte(`[{"id":"x","content":"y"}]`)}))
	assert.Equal(t, 0, rec.count())

	// The store itself is empty: the view must come from the event.
	assert.True(t, r.Deliver(core.Event{Key: core.DefaultKey, Raw: []byte(`[{"id":"note-2","content":"pushed"}]`)}))
	require.Len(t, r.Fields(), 1)
	assert.Equal(t, "pushed", r.Fields()[0].Text)

	// A removed key clears the view.
	assert.True(t, r.Deliver(core.Event{Key: core.DefaultKey}))
	assert.Empty(t, r.Fields())
	assert.Equal(t, 2, rec.count())
}

func TestReader_RenderIsNotReentrant(t *testing.T) {
	ctx := context.Background()
	b := memory.New(memory.Config{})
	require.NoError(t, b.Set(ctx, core.DefaultKey, []byte(`[{"id":"note-1","content":"a"}]`)))

	var r *reader.Reader
	renders := 0
	r = reader.New(newStore(t, b), reader.WithRenderer(core.RendererFunc(func(fields []core.Field) {
		renders++
		// A nested trigger while rendering is dropped.
		r.Deliver(core.Event{Key: core.DefaultKey, Raw: []byte(`[]`)})
		_ = r.Poll(ctx)
		state := r.State().(reader.ReaderState)
		assert.Equal(t, "rendering", state.Status)
	})))

	require.NoError(t, r.Poll(ctx))
	assert.Equal(t, 1, renders)

	state := r.State().(reader.ReaderState)
	assert.Equal(t, int64(2), state.Skipped)
	assert.Equal(t, "idle", state.Status)
	require.Len(t, r.Fields(), 1)
}

func TestReader_PollFailureKeepsView(t *testing.T) {
	ctx := context.Background()
	b := &failingGet{Backend: memory.New(memory.Config{})}
	require.NoError(t, b.Set(ctx, core.DefaultKey, []byte(`[{"id":"note-1","content":"a"}]`)))

	var reported []error
	r := reader.New(newStore(t, b), reader.WithErrorHandler(func(err error) { reported = append(reported, err) }))
	require.NoError(t, r.Poll(ctx))

	b.fail = true
	err := r.Poll(ctx)
	assert.ErrorIs(t, err, core.ErrStoreUnavailable)
	assert.Len(t, reported, 1)
	assert.Len(t, r.Fields(), 1)
}

type failingGet struct {
	*memory.Backend
	fail bool
}

func (f *failingGet) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.fail {
		return nil, false, errors.New("unavailable")
	}
	return f.Backend.Get(ctx, key)
}

func TestReader_RunReceivesNotifications(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	b := memory.New(memory.Config{})
	w := writer.New(newStore(t, b))
	require.NoError(t, w.Load(ctx))

	// A polling period this long means only a notification can deliver the update in time.
	r := reader.New(newStore(t, b), reader.WithPeriod(time.Hour))
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool {
		return r.State().(reader.ReaderState).PushEnabled
	}, time.Second, 5*time.Millisecond)

	id := w.Add(ctx)
	require.NoError(t, w.Edit(ctx, id, "pushed"))

	require.Eventually(t, func() bool {
		f := r.Fields()
		return len(f) == 1 && f[0].Text == "pushed"
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestReader_RunFallsBackToPolling(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	shared := memory.New(memory.Config{})
	w := writer.New(newStore(t, shared))
	r := reader.New(newStore(t, pollOnly{b: shared}), reader.WithPeriod(10*time.Millisecond))
	go func() { _ = r.Run(ctx) }()

	w.Add(ctx)

	require.Eventually(t, func() bool {
		return len(r.Fields()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, r.State().(reader.ReaderState).PushEnabled)
	assert.Equal(t, "reader", r.ComponentType())
}
