package core

import "context"

// Backend defines the contract for a durable key-value slot holder.
// Get and Set must be atomic at whole-value granularity: a reader never
// observes a partially written value.
type Backend interface {
	// Get returns the value stored under key. ok is false when the key is missing.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
}

// Watchable defines an interface for backends that push change notifications.
type Watchable interface {
	// Watch streams changes for keys matching pattern until ctx is done.
	// The channel is closed when the watch ends.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Initializer is implemented by backends that need setup before use (e.g. mkdir).
type Initializer interface {
	Initialize(ctx context.Context) error
}

type contextKey string

// OriginKey is the context key carrying the id of the store handle performing a write.
// Backends that can attribute writes stamp it on the resulting Event.
const OriginKey contextKey = "origin"

// OriginFrom returns the origin attached to ctx, if any.
func OriginFrom(ctx context.Context) string {
	if v, ok := ctx.Value(OriginKey).(string); ok {
		return v
	}
	return ""
}

// Surface is an editable or read-only text element owned by one note.
type Surface interface {
	SetText(text string)
	Text() string
	Destroy()
}

// SurfaceFactory creates surfaces for notes. onRemove is the note's remove affordance.
type SurfaceFactory interface {
	Create(id, text string, readOnly bool, onRemove func(id string)) Surface
}

// Renderer receives a rebuilt read-only view.
type Renderer interface {
	Render(fields []Field)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(fields []Field)

// Render calls f(fields).
func (f RendererFunc) Render(fields []Field) { f(fields) }

// Field is one rendered note in a projected view.
type Field struct {
	// Name is the surface identifier, e.g. "textareanote-1".
	Name     string
	ID       string
	Text     string
	ReadOnly bool
}
