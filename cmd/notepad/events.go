package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/adapters/lifecycle"
	"github.com/aretw0/notepad/pkg/core"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail change notifications for the shared key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		store, err := notepad.Open(cfg.URI(), storeOptions()...)
		if err != nil {
			return err
		}

		events, err := store.Watch(ctx)
		if errors.Is(err, core.ErrWatchUnsupported) {
			return fmt.Errorf("%s adapter does not push changes", cfg.Store.Adapter)
		}
		if err != nil {
			return err
		}

		source := lifecycle.NewSource(events)
		if err := source.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for e := range source.Events() {
			fmt.Fprintln(out, e.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}
