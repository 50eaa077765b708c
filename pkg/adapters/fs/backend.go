// Package fs implements a durable core.Backend that keeps each key in its own
// JSON file and pushes change notifications through fsnotify.
package fs

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/notepad/pkg/core"
)

const (
	// Ext is the extension of value files.
	Ext = ".json"

	// DefaultDebounce coalesces bursts of filesystem events for one key.
	DefaultDebounce = 50 * time.Millisecond

	// DefaultEventBuffer is the watch channel buffer used when Config.EventBuffer is zero.
	DefaultEventBuffer = 16
)

// Config holds the configuration for the filesystem backend.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	// MaxBytes limits the size of a single value. Zero means unlimited.
	MaxBytes     int
	Debounce     time.Duration
	EventBuffer  int
	Logger       *slog.Logger
	ErrorHandler func(error) // receives runtime watcher failures
}

// Backend stores values as files under Path.
type Backend struct {
	Path   string
	config Config

	mu            sync.RWMutex
	written       map[string]write
	writes        int
	watcherActive bool
	lastEvent     *time.Time
}

// write remembers what this backend last wrote for a key, to attribute watcher events.
type write struct {
	sum    [sha256.Size]byte
	origin string
}

// NewBackend creates a filesystem backend. No I/O happens until Initialize or first use.
func NewBackend(config Config) *Backend {
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultEventBuffer
	}
	return &Backend{
		Path:    config.Path,
		config:  config,
		written: make(map[string]write),
	}
}

// Initialize ensures the directory exists.
func (b *Backend) Initialize(ctx context.Context) error {
	if b.config.MustExist || b.config.ReadOnly {
		info, err := os.Stat(b.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", b.Path)
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", b.Path)
		}
		return nil
	}

	if err := os.MkdirAll(b.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

func (b *Backend) filename(key string) string {
	return filepath.Join(b.Path, key+Ext)
}

// resolveKey maps a file path inside Path back to its key.
func (b *Backend) resolveKey(name string) (string, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, TempFilePrefix) || filepath.Ext(base) != Ext {
		return "", false
	}
	key := strings.TrimSuffix(base, Ext)
	if core.ValidateKey(key) != nil {
		return "", false
	}
	return key, true
}

// Get implements core.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := core.ValidateKey(key); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(b.filename(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set implements core.Backend. The file is replaced atomically.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	if b.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := core.ValidateKey(key); err != nil {
		return err
	}
	if b.config.MaxBytes > 0 && len(value) > b.config.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", core.ErrQuotaExceeded, len(value), b.config.MaxBytes)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := replaceSnapshot(b.filename(key), value, 0644); err != nil {
		return err
	}
	b.written[key] = write{sum: sha256.Sum256(value), origin: core.OriginFrom(ctx)}
	b.writes++

	if b.config.Logger != nil {
		b.config.Logger.Debug("value written", "key", key, "bytes", len(value))
	}
	return nil
}

// originOf attributes data to the handle that last wrote it through this backend.
// Writes from other processes come back with an empty origin.
func (b *Backend) originOf(key string, data []byte) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	w, ok := b.written[key]
	if !ok || w.sum != sha256.Sum256(data) {
		return ""
	}
	return w.origin
}

// Watch implements core.Watchable.
// The channel is closed once ctx is done and the watcher has drained.
func (b *Backend) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern: %q", pattern)
	}

	events := make(chan core.Event, b.config.EventBuffer)
	w := newWatchWorker(b, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-w.done
		close(events)
		return nil
	})
	return events, nil
}

var _ core.Backend = (*Backend)(nil)
var _ core.Watchable = (*Backend)(nil)
var _ core.Initializer = (*Backend)(nil)
