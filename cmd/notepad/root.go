package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/internal/config"
)

var (
	verbose    bool
	configPath string
	storePath  string
	storeKey   string
	adapter    string

	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notepad",
	Short: "Sticky notes shared between one writer and many readers",
	Long: `Notepad keeps a board of sticky notes under a single shared key.
One writer edits and autosaves the board; any number of readers display it read-only.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("path") {
			loaded.Store.Path = storePath
		}
		if cmd.Flags().Changed("key") {
			loaded.Store.Key = storeKey
		}
		if cmd.Flags().Changed("adapter") {
			loaded.Store.Adapter = adapter
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		level := cfg.Level()
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&storePath, "path", "p", "", "Store location (directory for fs)")
	rootCmd.PersistentFlags().StringVarP(&storeKey, "key", "k", "", "Shared key notes are stored under")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter (fs, memory)")
}

// storeOptions returns the options every command opens the store with.
func storeOptions(extra ...notepad.Option) []notepad.Option {
	opts := append(cfg.Options(), notepad.WithLogger(slog.Default()))
	return append(opts, extra...)
}

// signalContext is cancelled on interrupt or termination.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
