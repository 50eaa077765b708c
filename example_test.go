package notepad_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/view"
)

// Example_basic writes two notes and renders them from a reader.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "notepad-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()

	w, err := notepad.NewWriter(ctx, tmpDir)
	if err != nil {
		log.Fatal(err)
	}
	first := w.Add(ctx)
	second := w.Add(ctx)
	_ = w.Edit(ctx, first, "buy milk")
	_ = w.Edit(ctx, second, "call mom\nafter 6")

	r, err := notepad.NewReader(tmpDir, notepad.WithRenderer(view.NewTextRenderer(os.Stdout)))
	if err != nil {
		log.Fatal(err)
	}
	if err := r.Poll(ctx); err != nil {
		log.Fatal(err)
	}
	// Output:
	// [note-1]
	//   buy milk
	// [note-2]
	//   call mom
	//   after 6
}

// Example_memory shares a board between a writer and a reader in one process.
func Example_memory() {
	ctx := context.Background()

	w, err := notepad.NewWriter(ctx, "example", notepad.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}
	_ = w.Edit(ctx, w.Add(ctx), "hello")

	store, err := notepad.Open("example", notepad.WithAdapter("memory"))
	if err != nil {
		log.Fatal(err)
	}
	for _, n := range store.Load(ctx) {
		fmt.Printf("%s: %s\n", n.ID, n.Content)
	}
	// Output:
	// note-1: hello
}
