// Package view projects snapshots into renderable fields.
package view

import "github.com/aretw0/notepad/pkg/core"

// SurfacePrefix prefixes note ids to name their surfaces.
const SurfacePrefix = "textarea"

// Project maps a snapshot to one field per record, in snapshot order.
func Project(snap core.Snapshot, readOnly bool) []core.Field {
	fields := make([]core.Field, 0, len(snap))
	for _, r := range snap {
		fields = append(fields, core.Field{
			Name:     SurfacePrefix + r.ID,
			ID:       r.ID,
			Text:     r.Content,
			ReadOnly: readOnly,
		})
	}
	return fields
}
