package notes

import (
	"fmt"
	"math/big"
	"regexp"

	"github.com/aretw0/notepad/pkg/core"
)

// Prefix is the prefix of generated note ids.
const Prefix = "note-"

var idPattern = regexp.MustCompile(`^note-(\d+)$`)

// Collection is the writer's live set of notes keyed by id.
// It is not safe for concurrent use; the owning writer serializes access.
type Collection struct {
	notes    map[string]*Note
	order    []string
	counter  *big.Int
	surfaces core.SurfaceFactory
	onRemove func(id string)
}

// NewCollection creates an empty collection.
// surfaces may be nil, in which case notes hold their text directly.
func NewCollection(surfaces core.SurfaceFactory, onRemove func(id string)) *Collection {
	return &Collection{
		notes:    make(map[string]*Note),
		counter:  new(big.Int),
		surfaces: surfaces,
		onRemove: onRemove,
	}
}

// Rehydrate builds a collection from a stored snapshot and renders every note.
// The counter resumes from the highest note-<n> suffix so new ids never collide.
// When records share an id the later one wins.
func Rehydrate(snap core.Snapshot, surfaces core.SurfaceFactory, onRemove func(id string)) *Collection {
	c := NewCollection(surfaces, onRemove)
	for _, r := range snap {
		if prev, ok := c.notes[r.ID]; ok {
			prev.Release()
		} else {
			c.order = append(c.order, r.ID)
		}
		n := New(r.ID, r.Content)
		n.Render(c.surfaces, c.onRemove)
		c.notes[r.ID] = n
	}
	c.counter = MaxCounter(snap)
	return c
}

// MaxCounter returns the highest numeric suffix among ids of the form note-<digits>, or 0.
// Suffixes are arbitrary precision, so no stored id is ever out of range.
func MaxCounter(snap core.Snapshot) *big.Int {
	highest := new(big.Int)
	for _, r := range snap {
		m := idPattern.FindStringSubmatch(r.ID)
		if m == nil {
			continue
		}
		num, ok := new(big.Int).SetString(m[1], 10)
		if ok && num.Cmp(highest) > 0 {
			highest = num
		}
	}
	return highest
}

// Add creates an empty note with the next id and returns that id.
func (c *Collection) Add() string {
	c.counter.Add(c.counter, big.NewInt(1))
	id := Prefix + c.counter.String()

	n := New(id, "")
	n.Render(c.surfaces, c.onRemove)
	c.notes[id] = n
	c.order = append(c.order, id)
	return id
}

// Remove deletes the note and releases its surface.
// It reports false when id is unknown, which is not an error.
func (c *Collection) Remove(id string) bool {
	n, ok := c.notes[id]
	if !ok {
		return false
	}
	n.Release()
	delete(c.notes, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// ContentsOf returns the live text of a note.
func (c *Collection) ContentsOf(id string) (string, bool) {
	n, ok := c.notes[id]
	if !ok {
		return "", false
	}
	return n.Content(), true
}

// Edit replaces the text of a note.
func (c *Collection) Edit(id, text string) error {
	n, ok := c.notes[id]
	if !ok {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	n.SetContent(text)
	return nil
}

// Get returns the note with the given id.
func (c *Collection) Get(id string) (*Note, bool) {
	n, ok := c.notes[id]
	return n, ok
}

// ToSnapshot materializes every live note with its latest text.
// Records follow insertion order so unchanged collections serialize identically.
func (c *Collection) ToSnapshot() core.Snapshot {
	snap := make(core.Snapshot, 0, len(c.order))
	for _, id := range c.order {
		snap = append(snap, c.notes[id].Record())
	}
	return snap
}

// IDs returns the note ids in insertion order.
func (c *Collection) IDs() []string {
	return append([]string(nil), c.order...)
}

// Len returns the number of live notes.
func (c *Collection) Len() int { return len(c.notes) }

// Counter returns the current id sequence value in decimal.
func (c *Collection) Counter() string { return c.counter.String() }
