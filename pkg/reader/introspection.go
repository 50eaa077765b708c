package reader

import (
	"time"

	"github.com/aretw0/introspection"
)

// ReaderState exposes internal state for observability.
type ReaderState struct {
	Key           string     `json:"key"`
	Status        string     `json:"status"`
	Notes         int        `json:"notes"`
	Polls         int        `json:"polls"`
	Notifications int        `json:"notifications"`
	Renders       int        `json:"renders"`
	Skipped       int64      `json:"skipped"`
	PushEnabled   bool       `json:"push_enabled"`
	LastUpdated   *time.Time `json:"last_updated,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Reader) State() any {
	status := "idle"
	if r.rendering.Load() {
		status = "rendering"
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state := ReaderState{
		Key:           r.store.Key(),
		Status:        status,
		Notes:         len(r.fields),
		Polls:         r.polls,
		Notifications: r.notifications,
		Renders:       r.renders,
		Skipped:       r.skipped.Load(),
		PushEnabled:   r.pushEnabled,
	}
	if !r.updatedAt.IsZero() {
		updatedAt := r.updatedAt
		state.LastUpdated = &updatedAt
	}
	return state
}

// ComponentType implements introspection.Component.
func (r *Reader) ComponentType() string {
	return "reader"
}

var _ introspection.Introspectable = (*Reader)(nil)
var _ introspection.Component = (*Reader)(nil)
