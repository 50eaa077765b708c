package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/view"
)

var (
	readOnce  bool
	readState bool
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Display the board read-only",
	Long: `Render the board and refresh it whenever the stored notes change.
With --once, render a single time and exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		out := cmd.OutOrStdout()
		r, err := notepad.NewReader(cfg.URI(), storeOptions(
			notepad.WithRenderer(view.NewTextRenderer(out)),
			notepad.WithStatus(func(s string) { fmt.Fprintln(cmd.ErrOrStderr(), s) }),
		)...)
		if err != nil {
			return err
		}

		if !readOnce {
			return r.Run(ctx)
		}

		if err := r.Poll(ctx); err != nil {
			return err
		}
		if readState {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(r.State())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readOnce, "once", false, "Render once and exit")
	readCmd.Flags().BoolVar(&readState, "state", false, "With --once, print the reader state as JSON")
}
