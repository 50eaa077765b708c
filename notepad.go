package notepad

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/notepad/internal/platform"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/reader"
	"github.com/aretw0/notepad/pkg/writer"
)

// --- Types ---

// Note is a public alias for a stored note record.
type Note = core.Record

// Snapshot is a public alias for the stored list of notes.
type Snapshot = core.Snapshot

// Store is a public alias for a handle on the shared key.
type Store = core.Store

// Writer is a public alias for the editing role.
type Writer = writer.Writer

// Reader is a public alias for the read-only role.
type Reader = reader.Reader

// Spaces is a registry of named in-memory stores.
type Spaces = platform.Spaces

// --- Configuration ---

// Option defines a functional option for configuring notepad.
type Option = platform.Option

// WithAdapter selects the storage adapter by name ("fs" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithBackend allows injecting a custom storage backend.
func WithBackend(b core.Backend) Option {
	return platform.WithBackend(b)
}

// WithSpaces sets the registry "memory" stores are looked up in.
func WithSpaces(spaces *Spaces) Option {
	return platform.WithSpaces(spaces)
}

// WithKey sets the shared key notes are stored under.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithMustExist ensures the store location already exists.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the store for reading only.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithQuota limits the stored value size in bytes.
func WithQuota(bytes int) Option {
	return platform.WithQuota(bytes)
}

// WithEventBuffer sets the size of change notification buffers.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithPeriod sets the autosave and polling cadence.
func WithPeriod(d time.Duration) Option {
	return platform.WithPeriod(d)
}

// WithSurfaces sets where a writer renders its notes.
func WithSurfaces(f core.SurfaceFactory) Option {
	return platform.WithSurfaces(f)
}

// WithRenderer sets how a reader displays the notes.
func WithRenderer(r core.Renderer) Option {
	return platform.WithRenderer(r)
}

// WithStatus receives the status line after each save or refresh.
func WithStatus(fn func(string)) Option {
	return platform.WithStatus(fn)
}

// WithClock overrides the time source for status lines.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithErrorHandler receives save and read failures.
func WithErrorHandler(fn func(error)) Option {
	return platform.WithErrorHandler(fn)
}

// WithWatcherErrorHandler receives failures raised inside the change watcher.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// --- Factory ---

// Open returns a store handle. uri is a directory for "fs" and a space name for "memory".
func Open(uri string, opts ...Option) (*Store, error) {
	return platform.Open(uri, opts...)
}

// NewWriter opens the store and returns a rehydrated writer.
func NewWriter(ctx context.Context, uri string, opts ...Option) (*Writer, error) {
	return platform.NewWriter(ctx, uri, opts...)
}

// NewReader opens the store and returns a reader.
func NewReader(uri string, opts ...Option) (*Reader, error) {
	return platform.NewReader(uri, opts...)
}
