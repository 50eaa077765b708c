// Package notepad is the composition root for a sticky-notes board shared
// between one writer and any number of read-only readers.
//
// The writer owns a live collection of notes and autosaves the whole list
// under a single key, both on a timer and whenever a note is edited.
// Readers never write: they poll the key on the same cadence, subscribe to
// change notifications where the backend supports them, and re-render only
// when the stored value actually changed.
//
// Storage is pluggable through core.Backend. Two adapters ship with the module:
//
//   - fs: one JSON file per key, atomic writes, change notifications through fsnotify.
//   - memory: a process-local map with buffered watchers, shared by space name.
//
// Usage:
//
//	w, err := notepad.NewWriter(ctx, "./board",
//		notepad.WithStatus(func(s string) { fmt.Println(s) }),
//	)
//	id := w.Add(ctx)
//	_ = w.Edit(ctx, id, "buy milk")
//
//	r, err := notepad.NewReader("./board",
//		notepad.WithRenderer(view.NewTextRenderer(os.Stdout)),
//	)
//	go r.Run(ctx)
package notepad
