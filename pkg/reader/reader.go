// Package reader implements the display role: a read-only view kept in sync
// with the shared store by polling and by change notifications.
package reader

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/view"
)

// Reader renders the stored snapshot and re-renders only when the raw value changes.
type Reader struct {
	mu        sync.Mutex
	rendering atomic.Bool
	store     *core.Store
	opts      *options

	// lastSeen caches the raw value behind the current view; seen is false until the first render.
	lastSeen []byte
	seen     bool

	fields        []core.Field
	updatedAt     time.Time
	polls         int
	renders       int
	notifications int
	skipped       atomic.Int64
	pushEnabled   bool
}

// New creates a reader over store. Nothing is rendered until the first Poll.
func New(store *core.Store, opts ...Option) *Reader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Reader{store: store, opts: o}
}

// Poll reads the stored value and renders it if it differs from the last render.
// On a read failure the current view is kept and the error returned.
func (r *Reader) Poll(ctx context.Context) error {
	raw, err := r.store.Raw(ctx)
	if err != nil {
		r.opts.logger.Warn("poll failed, keeping current view", "key", r.store.Key(), "error", err)
		if r.opts.onError != nil {
			r.opts.onError(err)
		}
		return err
	}
	r.apply(raw, false)
	return nil
}

// Deliver handles a change notification, using its value without re-reading the store.
// It reports whether the event was for this reader's key.
func (r *Reader) Deliver(e core.Event) bool {
	if e.Key != r.store.Key() {
		return false
	}
	raw := e.Raw
	if raw == nil {
		raw = []byte(core.EmptyRaw)
	}
	r.apply(raw, true)
	return true
}

// apply is non-reentrant: a call arriving while a render is in progress is
// dropped and left to the next tick. Callbacks run outside the lock so they may
// query the reader.
func (r *Reader) apply(raw []byte, notified bool) (rendered bool) {
	if !r.rendering.CompareAndSwap(false, true) {
		r.skipped.Add(1)
		r.opts.logger.Debug("render in progress, skipping")
		return false
	}
	defer r.rendering.Store(false)

	r.mu.Lock()
	if notified {
		r.notifications++
	} else {
		r.polls++
	}

	if r.seen && bytes.Equal(raw, r.lastSeen) {
		r.mu.Unlock()
		r.touch()
		return false
	}

	r.lastSeen = append([]byte(nil), raw...)
	r.seen = true
	r.fields = view.Project(r.store.Decode(raw), true)
	r.renders++
	fields := append([]core.Field(nil), r.fields...)
	r.mu.Unlock()

	if r.opts.renderer != nil {
		r.opts.renderer.Render(fields)
	}
	r.opts.logger.Debug("view rebuilt", "key", r.store.Key(), "notes", len(fields), "notified", notified)

	r.touch()
	return true
}

func (r *Reader) touch() {
	now := r.opts.clock()
	r.mu.Lock()
	r.updatedAt = now
	r.mu.Unlock()

	if r.opts.status != nil {
		r.opts.status(UpdatedLabel(now))
	}
}

// Run polls immediately, then on every period and on every change notification, until ctx is done.
// Without push support polling alone bounds staleness to one period.
func (r *Reader) Run(ctx context.Context) error {
	_ = r.Poll(ctx)

	events, err := r.store.Watch(ctx)
	switch {
	case errors.Is(err, core.ErrWatchUnsupported):
		r.opts.logger.Debug("change notifications unavailable, polling only")
	case err != nil:
		r.opts.logger.Warn("watch failed, polling only", "error", err)
		if r.opts.onError != nil {
			r.opts.onError(err)
		}
	default:
		r.setPushEnabled(true)
		defer r.setPushEnabled(false)
	}

	ticker := time.NewTicker(r.opts.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			_ = r.Poll(ctx)
		case e, ok := <-events:
			if !ok {
				events = nil
				r.setPushEnabled(false)
				continue
			}
			r.Deliver(e)
		}
	}
}

func (r *Reader) setPushEnabled(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushEnabled = enabled
}

// Fields returns the current read-only view.
func (r *Reader) Fields() []core.Field {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]core.Field(nil), r.fields...)
}

// Renders returns how many times the view was rebuilt.
func (r *Reader) Renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.renders
}

// UpdatedAt returns the time of the last poll or notification.
func (r *Reader) UpdatedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updatedAt
}

// UpdatedLabel formats the reader status line.
func UpdatedLabel(t time.Time) string {
	return "updated at " + t.Format(core.TimeFormat)
}
