package writer

import (
	"time"

	"github.com/aretw0/introspection"
)

// WriterState exposes internal state for observability.
type WriterState struct {
	Key       string     `json:"key"`
	Notes     int        `json:"notes"`
	Counter   string     `json:"counter"`
	Saves     int        `json:"saves"`
	Failures  int        `json:"failures"`
	LastSaved *time.Time `json:"last_saved,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (w *Writer) State() any {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := WriterState{
		Key:      w.store.Key(),
		Notes:    w.notes.Len(),
		Counter:  w.notes.Counter(),
		Saves:    w.saves,
		Failures: w.failures,
	}
	if !w.savedAt.IsZero() {
		savedAt := w.savedAt
		state.LastSaved = &savedAt
	}
	if w.lastErr != nil {
		state.LastError = w.lastErr.Error()
	}
	return state
}

// ComponentType implements introspection.Component.
func (w *Writer) ComponentType() string {
	return "writer"
}

var _ introspection.Introspectable = (*Writer)(nil)
var _ introspection.Component = (*Writer)(nil)
