// Package notes implements the writer-side note entity and collection.
package notes

import "github.com/aretw0/notepad/pkg/core"

// Note is a single note: a fixed identity plus mutable text.
// Once rendered, the surface is the source of truth for its text.
type Note struct {
	id      string
	content string
	surface core.Surface
}

// New creates an unrendered note.
func New(id, content string) *Note {
	return &Note{id: id, content: content}
}

// ID returns the note identity.
func (n *Note) ID() string { return n.id }

// Content returns the live text.
func (n *Note) Content() string {
	if n.surface != nil {
		return n.surface.Text()
	}
	return n.content
}

// SetContent replaces the text, on the surface too if rendered.
func (n *Note) SetContent(text string) {
	n.content = text
	if n.surface != nil {
		n.surface.SetText(text)
	}
}

// Rendered reports whether the note owns a surface.
func (n *Note) Rendered() bool { return n.surface != nil }

// Render creates the note's editable surface. A nil factory leaves the note unrendered.
func (n *Note) Render(f core.SurfaceFactory, onRemove func(id string)) {
	if f == nil || n.surface != nil {
		return
	}
	n.surface = f.Create(n.id, n.content, false, onRemove)
}

// Release destroys the surface, keeping the last text it held.
func (n *Note) Release() {
	if n.surface == nil {
		return
	}
	n.content = n.surface.Text()
	n.surface.Destroy()
	n.surface = nil
}

// Record returns the persisted form of the note.
func (n *Note) Record() core.Record {
	return core.Record{ID: n.id, Content: n.Content()}
}
