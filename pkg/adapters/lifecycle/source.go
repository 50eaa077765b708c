// Package lifecycle publishes board changes as lifecycle events, for hosts
// that consume a lifecycle.Source such as `notepad events`.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notepad/pkg/core"
)

// Change is emitted for every change notification of the shared key.
type Change struct {
	core.Event
	// Notes is the number of records in the new value, or -1 when it is not a snapshot.
	Notes int
}

// String implements lifecycle.Event.
func (c Change) String() string {
	if c.Notes < 0 {
		return fmt.Sprintf("%s: unreadable value", c.Event)
	}
	return fmt.Sprintf("%s: %d notes", c.Event, c.Notes)
}

// Source relays store change events until the store channel closes or ctx ends.
type Source struct {
	in      <-chan core.Event
	out     chan lifecycle.Event
	started atomic.Bool
}

// NewSource wraps the channel returned by core.Store.Watch.
func NewSource(in <-chan core.Event) *Source {
	return &Source{
		in:  in,
		out: make(chan lifecycle.Event),
	}
}

// Events implements lifecycle.Source. It is closed when relaying stops.
func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Start implements lifecycle.Source. It can be called once.
func (s *Source) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return errors.New("source already started")
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.in:
				if !ok {
					return nil
				}
				select {
				case s.out <- newChange(e):
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

func newChange(e core.Event) Change {
	snap, err := core.ParseSnapshot(e.Raw)
	if err != nil {
		return Change{Event: e, Notes: -1}
	}
	return Change{Event: e, Notes: len(snap)}
}

var _ lifecycle.Source = (*Source)(nil)
var _ lifecycle.Event = Change{}
