package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/notepad/pkg/core"
)

// TextRenderer prints fields as indented plain-text blocks.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer creates a renderer writing to w.
func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

// Render implements core.Renderer.
func (r *TextRenderer) Render(fields []core.Field) {
	if len(fields) == 0 {
		fmt.Fprintln(r.w, "(no notes)")
		return
	}
	for _, f := range fields {
		fmt.Fprintf(r.w, "[%s]\n", f.ID)
		for _, line := range strings.Split(f.Text, "\n") {
			fmt.Fprintf(r.w, "  %s\n", line)
		}
	}
}

var _ core.Renderer = (*TextRenderer)(nil)
