// Package writer implements the editing role: a live note collection that
// autosaves to a shared store on a timer and on edit events.
package writer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/notes"
)

// Writer owns the live notes and is the only writer of the shared snapshot.
// Its methods are serialized, so handlers never interleave.
type Writer struct {
	mu    sync.Mutex
	store *core.Store
	notes *notes.Collection
	opts  *options

	savedAt  time.Time
	lastErr  error
	loadErr  error
	loaded   bool
	saves    int
	failures int
}

// New creates a writer over store with an empty collection. Call Load to rehydrate.
func New(store *core.Store, opts ...Option) *Writer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	w := &Writer{store: store, opts: o}
	w.notes = notes.NewCollection(o.surfaces, w.handleRemove)
	return w
}

// Load rehydrates the collection from the store and saves at once,
// so the status label is populated right away.
// A failed read leaves the collection and the stored value untouched, and
// autosave stays disabled until a later Load succeeds.
func (w *Writer) Load(ctx context.Context) error {
	raw, err := w.store.Raw(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.loadErr = err
		w.opts.logger.Error("load failed, autosave disabled", "key", w.store.Key(), "error", err)
		return err
	}
	w.loadErr = nil
	w.loaded = true

	for _, id := range w.notes.IDs() {
		w.notes.Remove(id)
	}
	w.notes = notes.Rehydrate(w.store.Decode(raw), w.opts.surfaces, w.handleRemove)
	w.opts.logger.Debug("notes loaded", "count", w.notes.Len(), "counter", w.notes.Counter())

	return w.autosaveLocked(ctx)
}

// Add creates an empty note, saves, and returns its id.
func (w *Writer) Add(ctx context.Context) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.notes.Add()
	w.opts.logger.Debug("note added", "id", id)
	_ = w.autosaveLocked(ctx)
	return id
}

// Remove deletes a note and saves. Unknown ids are a no-op.
func (w *Writer) Remove(ctx context.Context, id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.notes.Remove(id) {
		return
	}
	w.opts.logger.Debug("note removed", "id", id)
	_ = w.autosaveLocked(ctx)
}

func (w *Writer) handleRemove(id string) {
	w.Remove(context.Background(), id)
}

// Edit replaces a note's text and fires the input event.
func (w *Writer) Edit(ctx context.Context, id, text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.notes.Edit(id, text); err != nil {
		return err
	}
	_ = w.autosaveLocked(ctx)
	return nil
}

// Input is the input-change event of a note's surface.
func (w *Writer) Input(ctx context.Context, id string) error {
	return w.trigger(ctx, "input", id)
}

// Blur is the focus-loss event of a note's surface.
func (w *Writer) Blur(ctx context.Context, id string) error {
	return w.trigger(ctx, "blur", id)
}

func (w *Writer) trigger(ctx context.Context, event, id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.opts.logger.Debug("autosave triggered", "event", event, "id", id)
	return w.autosaveLocked(ctx)
}

// Autosave writes the full collection to the store.
// Redundant calls are harmless: each one re-serializes the current state.
func (w *Writer) Autosave(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.autosaveLocked(ctx)
}

func (w *Writer) autosaveLocked(ctx context.Context) error {
	if w.loadErr != nil {
		return fmt.Errorf("%w: not loaded: %w", core.ErrStoreUnavailable, w.loadErr)
	}
	snap := w.notes.ToSnapshot()

	if err := w.store.Save(ctx, snap); err != nil {
		w.lastErr = err
		w.failures++
		w.opts.logger.Error("autosave failed", "key", w.store.Key(), "notes", len(snap), "error", err)
		if w.opts.onError != nil {
			w.opts.onError(err)
		}
		return err
	}

	w.lastErr = nil
	w.saves++
	w.savedAt = w.opts.clock()
	if w.opts.status != nil {
		w.opts.status(SavedLabel(w.savedAt))
	}
	return nil
}

// Run autosaves every period until ctx is done.
// Failed saves are reported and retried on the next tick.
func (w *Writer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.opts.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_ = w.Autosave(ctx)
		}
	}
}

// Loaded reports whether the last Load read the store successfully.
func (w *Writer) Loaded() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loaded && w.loadErr == nil
}

// Snapshot returns the current live state without saving it.
func (w *Writer) Snapshot() core.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notes.ToSnapshot()
}

// ContentsOf returns the live text of a note.
func (w *Writer) ContentsOf(id string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notes.ContentsOf(id)
}

// IDs returns the live note ids.
func (w *Writer) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notes.IDs()
}

// LastError returns the error of the most recent save, or nil if it succeeded.
func (w *Writer) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// SavedAt returns the time of the last successful save.
func (w *Writer) SavedAt() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.savedAt
}

// SavedLabel formats the writer status line.
func SavedLabel(t time.Time) string {
	return "saved at " + t.Format(core.TimeFormat)
}
