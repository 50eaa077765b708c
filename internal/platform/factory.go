package platform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/notepad/pkg/adapters/fs"
	"github.com/aretw0/notepad/pkg/adapters/memory"
	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/reader"
	"github.com/aretw0/notepad/pkg/writer"
)

// Spaces maps memory space names to their backends. The zero value is ready to use.
type Spaces struct {
	mu       sync.Mutex
	backends map[string]*memory.Backend
}

// DefaultSpaces is the process-wide registry used when WithSpaces is not given.
var DefaultSpaces = &Spaces{}

func (s *Spaces) open(name string, mustExist bool, config memory.Config) (*memory.Backend, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.backends[name]; ok {
		return b, nil
	}
	if mustExist {
		return nil, fmt.Errorf("memory space does not exist: %q", name)
	}
	if s.backends == nil {
		s.backends = make(map[string]*memory.Backend)
	}
	b := memory.New(config)
	s.backends[name] = b
	return b, nil
}

// Open returns a store handle for the given URI.
// The URI is adapter-specific: a directory for "fs", a space name for "memory".
// Memory spaces live in DefaultSpaces, a process-wide registry, unless WithSpaces
// supplies another one; handles opened on the same name in one registry share notes.
func Open(uri string, opts ...Option) (*core.Store, error) {
	o := parseOptions(opts)

	backend, err := openBackend(uri, o)
	if err != nil {
		return nil, err
	}

	if init, ok := backend.(core.Initializer); ok {
		if err := init.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}

	return core.NewStore(backend, o.key, o.logger)
}

func openBackend(uri string, o *options) (core.Backend, error) {
	if o.backend != nil {
		return o.backend, nil
	}

	mustExist, _ := o.config["must_exist"].(bool)
	readOnly, _ := o.config["read_only"].(bool)
	maxBytes, _ := o.config["max_bytes"].(int)
	eventBuffer, _ := o.config["event_buffer"].(int)
	debounce, _ := o.config["debounce"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	switch o.adapter {
	case "fs":
		if uri == "" {
			return nil, fmt.Errorf("fs adapter requires a path")
		}
		return fs.NewBackend(fs.Config{
			Path:         uri,
			MustExist:    mustExist,
			ReadOnly:     readOnly,
			MaxBytes:     maxBytes,
			Debounce:     debounce,
			EventBuffer:  eventBuffer,
			Logger:       o.logger,
			ErrorHandler: errorHandler,
		}), nil
	case "memory":
		spaces := o.spaces
		if spaces == nil {
			spaces = DefaultSpaces
		}
		b, err := spaces.open(uri, mustExist, memory.Config{
			MaxBytes:    maxBytes,
			EventBuffer: eventBuffer,
			Logger:      o.logger,
		})
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}

// NewWriter opens the store, creates a writer and rehydrates it.
// A failed read is returned, so existing notes are never overwritten.
// A failed first save is reported through the error handler, not returned:
// the writer is usable and retries on its cadence.
func NewWriter(ctx context.Context, uri string, opts ...Option) (*writer.Writer, error) {
	o := parseOptions(opts)

	store, err := Open(uri, opts...)
	if err != nil {
		return nil, err
	}

	w := writer.New(store,
		writer.WithPeriod(o.period),
		writer.WithLogger(o.logger),
		writer.WithSurfaces(o.surfaces),
		writer.WithStatus(o.status),
		writer.WithClock(o.clock),
		writer.WithErrorHandler(o.errorHandler),
	)
	if err := w.Load(ctx); err != nil && !w.Loaded() {
		return nil, err
	}
	return w, nil
}

// NewReader opens the store and creates a reader. Call Run or Poll to render.
func NewReader(uri string, opts ...Option) (*reader.Reader, error) {
	o := parseOptions(opts)

	store, err := Open(uri, opts...)
	if err != nil {
		return nil, err
	}

	return reader.New(store,
		reader.WithPeriod(o.period),
		reader.WithLogger(o.logger),
		reader.WithRenderer(o.renderer),
		reader.WithStatus(o.status),
		reader.WithClock(o.clock),
		reader.WithErrorHandler(o.errorHandler),
	), nil
}
