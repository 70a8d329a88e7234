package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mastanley13/MTGDeck-sub000/internal/events"
	"github.com/mastanley13/MTGDeck-sub000/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory of deck lists and validate them on change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			watchDir := dir
			if len(args) == 1 {
				watchDir = args[0]
			}
			if watchDir == "" {
				watchDir = a.cfg.Watcher.Directory
			}
			if watchDir == "" {
				return fmt.Errorf("no watch directory: pass one or set watcher.directory in the config")
			}

			dispatcher := events.NewEventDispatcher(a.logger)
			w := watcher.New(watchDir, a.lookup, dispatcher, a.logger)
			w.OnReport = func(r watcher.Report) {
				fmt.Printf("\n%s\n", r.Path)
				for _, name := range r.Unresolved {
					fmt.Printf("  ? unresolved: %s\n", name)
				}
				printChecks(r.Checks)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s for deck list changes. Press Ctrl+C to stop.\n", watchDir)
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to watch (defaults to watcher.directory)")
	return cmd
}
