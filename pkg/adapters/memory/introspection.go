package memory

import (
	"github.com/aretw0/introspection"
)

// BackendState exposes internal state for observability.
type BackendState struct {
	Keys          int `json:"keys"`
	Watchers      int `json:"watchers"`
	Writes        int `json:"writes"`
	DroppedEvents int `json:"dropped_events"`
	MaxBytes      int `json:"max_bytes,omitempty"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BackendState{
		Keys:          len(b.values),
		Watchers:      len(b.watchers),
		Writes:        b.writes,
		DroppedEvents: b.dropped,
		MaxBytes:      b.config.MaxBytes,
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory-backend"
}

var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)
