// Package memory implements an in-process core.Backend with push notifications.
// Store handles sharing one Backend behave like separate instances sharing a store.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/notepad/pkg/core"
)

// DefaultEventBuffer is the per-watcher buffer used when Config.EventBuffer is zero.
const DefaultEventBuffer = 16

// Config holds the configuration for the in-memory backend.
type Config struct {
	// MaxBytes limits the size of a single value. Zero means unlimited.
	MaxBytes    int
	EventBuffer int
	Logger      *slog.Logger
}

// Backend keeps values in a map and fans out writes to watchers.
type Backend struct {
	mu       sync.Mutex
	values   map[string][]byte
	watchers map[int]*watcher
	nextID   int
	writes   int
	dropped  int
	config   Config
}

type watcher struct {
	pattern string
	events  chan core.Event
}

// New creates an empty backend.
func New(config Config) *Backend {
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultEventBuffer
	}
	return &Backend{
		values:   make(map[string][]byte),
		watchers: make(map[int]*watcher),
		config:   config,
	}
}

// Get implements core.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set implements core.Backend. Watchers are notified after the value is replaced.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.config.MaxBytes > 0 && len(value) > b.config.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", core.ErrQuotaExceeded, len(value), b.config.MaxBytes)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	stored := append([]byte(nil), value...)
	b.values[key] = stored
	b.writes++

	event := core.Event{
		Key:       key,
		Raw:       stored,
		Origin:    core.OriginFrom(ctx),
		Timestamp: time.Now().Unix(),
	}
	for _, w := range b.watchers {
		if ok, _ := doublestar.Match(w.pattern, key); !ok {
			continue
		}
		select {
		case w.events <- event:
		default:
			// Dropped: the next poll picks the value up.
			b.dropped++
			if b.config.Logger != nil {
				b.config.Logger.Warn("watcher buffer full, dropping event", "key", key)
			}
		}
	}
	return nil
}

// Watch implements core.Watchable.
func (b *Backend) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	w := &watcher{pattern: pattern, events: make(chan core.Event, b.config.EventBuffer)}
	b.watchers[id] = w
	b.mu.Unlock()

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.watchers, id)
		close(w.events)
		b.mu.Unlock()
		return nil
	})

	return w.events, nil
}

var _ core.Backend = (*Backend)(nil)
var _ core.Watchable = (*Backend)(nil)
