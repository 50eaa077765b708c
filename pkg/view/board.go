package view

import (
	"sort"
	"sync"

	"github.com/aretw0/notepad/pkg/core"
)

// Board is an in-memory SurfaceFactory. It stands in for a widget toolkit
// in terminal hosts and tests.
type Board struct {
	mu       sync.Mutex
	surfaces map[string]*Surface
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{surfaces: make(map[string]*Surface)}
}

// Create implements core.SurfaceFactory.
func (b *Board) Create(id, text string, readOnly bool, onRemove func(id string)) core.Surface {
	s := &Surface{
		board:    b,
		id:       id,
		name:     SurfacePrefix + id,
		text:     text,
		readOnly: readOnly,
		onRemove: onRemove,
	}
	b.mu.Lock()
	b.surfaces[id] = s
	b.mu.Unlock()
	return s
}

// Lookup returns the live surface for a note id.
func (b *Board) Lookup(id string) (*Surface, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.surfaces[id]
	return s, ok
}

// IDs returns the ids of live surfaces, sorted.
func (b *Board) IDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, 0, len(b.surfaces))
	for id := range b.surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live surfaces.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.surfaces)
}

func (b *Board) drop(id string, s *Surface) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.surfaces[id] == s {
		delete(b.surfaces, id)
	}
}

// Surface is a text element on a Board.
type Surface struct {
	board    *Board
	mu       sync.Mutex
	id       string
	name     string
	text     string
	readOnly bool
	onRemove func(id string)
}

// Name returns the surface identifier.
func (s *Surface) Name() string { return s.name }

// ReadOnly reports whether user typing is rejected.
func (s *Surface) ReadOnly() bool { return s.readOnly }

// SetText implements core.Surface.
func (s *Surface) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Text implements core.Surface.
func (s *Surface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Type simulates user typing. It reports false on read-only surfaces.
func (s *Surface) Type(text string) bool {
	if s.readOnly {
		return false
	}
	s.SetText(text)
	return true
}

// PressRemove invokes the remove affordance.
func (s *Surface) PressRemove() {
	if s.onRemove != nil {
		s.onRemove(s.id)
	}
}

// Destroy implements core.Surface.
func (s *Surface) Destroy() {
	s.board.drop(s.id, s)
}

var _ core.SurfaceFactory = (*Board)(nil)
var _ core.Surface = (*Surface)(nil)
