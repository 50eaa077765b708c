// Package core holds the domain types and ports shared by the writer and reader roles.
package core

import (
	"fmt"
	"time"
)

// Record is the persisted form of a single note.
type Record struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Snapshot is the full set of notes at one instant.
// Order carries no meaning.
type Snapshot []Record

// EmptyRaw is the raw form of an empty snapshot.
const EmptyRaw = "[]"

// Event is a change notification for one key of a store.
type Event struct {
	Key string
	// Raw is the new stored value. Nil when the key was removed.
	Raw []byte
	// Origin identifies the store handle that caused the change, when known.
	Origin    string
	Timestamp int64 // Unix timestamp
}

// String implements lifecycle.Event.
func (e Event) String() string {
	return fmt.Sprintf("%s (%d bytes) at %s", e.Key, len(e.Raw), time.Unix(e.Timestamp, 0).Format(time.RFC3339))
}
