package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/notepad/pkg/core"
)

// options holds the internal configuration for stores, writers and readers.
type options struct {
	backend      core.Backend
	logger       *slog.Logger
	adapter      string
	spaces       *Spaces
	key          string
	config       map[string]interface{}
	period       time.Duration
	surfaces     core.SurfaceFactory
	renderer     core.Renderer
	status       func(string)
	clock        func() time.Time
	errorHandler func(error)
}

// Option defines a functional option for configuring notepad.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
		key:     core.DefaultKey,
		config:  make(map[string]interface{}),
	}
}

func parseOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithBackend allows injecting a custom storage backend (e.g. a fake in tests).
// If provided, the adapter selected by WithAdapter is skipped.
func WithBackend(b core.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSpaces sets the registry memory spaces are looked up in.
// Defaults to DefaultSpaces.
func WithSpaces(spaces *Spaces) Option {
	return func(o *options) {
		o.spaces = spaces
	}
}

// WithKey sets the shared key notes are stored under.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMustExist requires the store location to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly opens the store for reading only. Saves fail with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithQuota limits the size of the stored value in bytes. Zero means unlimited.
func WithQuota(bytes int) Option {
	return func(o *options) {
		o.config["max_bytes"] = bytes
	}
}

// WithEventBuffer sets the size of change notification buffers.
// Zero means the adapter default.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithDebounce sets how long the fs adapter waits for a file to settle before notifying.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.config["debounce"] = d
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside the watch loop,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithPeriod sets the autosave and polling cadence. Defaults to 2s.
func WithPeriod(d time.Duration) Option {
	return func(o *options) {
		o.period = d
	}
}

// WithSurfaces sets the surface factory used by writers.
func WithSurfaces(f core.SurfaceFactory) Option {
	return func(o *options) {
		o.surfaces = f
	}
}

// WithRenderer sets the renderer used by readers.
func WithRenderer(r core.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithStatus receives the "saved at" or "updated at" status line.
func WithStatus(fn func(string)) Option {
	return func(o *options) {
		o.status = fn
	}
}

// WithClock overrides the time source for status lines.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithErrorHandler receives save failures (writer) and read failures (reader).
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}
