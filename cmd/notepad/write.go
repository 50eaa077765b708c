package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/view"
)

const writeHelp = `commands:
  add                 create an empty note
  edit <id> <text>    replace a note's text ("\n" starts a new line)
  rm <id>             remove a note
  ls                  list notes
  quit                save and exit`

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Edit the board interactively",
	Long: `Open the board as its writer. Notes are autosaved on every edit and on a timer.
Commands are read from stdin, one per line.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		board := view.NewBoard()
		out := cmd.OutOrStdout()

		w, err := notepad.NewWriter(ctx, cfg.URI(), storeOptions(
			notepad.WithSurfaces(board),
			notepad.WithStatus(func(s string) { fmt.Fprintln(cmd.ErrOrStderr(), s) }),
		)...)
		if err != nil {
			return err
		}

		lifecycle.Go(ctx, w.Run, lifecycle.WithErrorHandler(func(err error) {
			slog.Error("autosave loop stopped", "error", err)
		}))

		fmt.Fprintln(out, writeHelp)
		err = repl(ctx, cmd.InOrStdin(), out, w, board)
		_ = w.Autosave(context.Background())
		return err
	},
}

func repl(ctx context.Context, in io.Reader, out io.Writer, w *notepad.Writer, board *view.Board) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			if quit := dispatch(ctx, out, line, w, board); quit {
				return nil
			}
		}
	}
}

func dispatch(ctx context.Context, out io.Writer, line string, w *notepad.Writer, board *view.Board) (quit bool) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
	case "add":
		fmt.Fprintln(out, w.Add(ctx))
	case "edit":
		id, text, _ := strings.Cut(rest, " ")
		s, ok := board.Lookup(id)
		if !ok {
			fmt.Fprintf(out, "no such note: %s\n", id)
			return false
		}
		s.Type(strings.ReplaceAll(text, `\n`, "\n"))
		if err := w.Input(ctx, id); err != nil {
			return false
		}
		_ = w.Blur(ctx, id)
	case "rm":
		s, ok := board.Lookup(rest)
		if !ok {
			fmt.Fprintf(out, "no such note: %s\n", rest)
			return false
		}
		s.PressRemove()
	case "ls":
		view.NewTextRenderer(out).Render(view.Project(w.Snapshot(), false))
	case "quit", "exit":
		return true
	default:
		fmt.Fprintln(out, writeHelp)
	}
	return false
}

func init() {
	rootCmd.AddCommand(writeCmd)
}
