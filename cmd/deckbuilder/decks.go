package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mastanley13/MTGDeck-sub000/internal/deckio"
	"github.com/mastanley13/MTGDeck-sub000/internal/storage"
)

func newDecksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "Manage saved decks",
	}
	cmd.AddCommand(newDecksListCmd(), newDecksExportCmd(), newDecksDeleteCmd())
	return cmd
}

func newDecksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved decks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.store.ListForUser(cmd.Context(), a.cfg.App.UserID)
			if err != nil {
				return fmt.Errorf("list decks: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No saved decks.")
				return nil
			}
			for _, record := range records {
				fmt.Printf("%-36s  %-30s  %s\n",
					record.ID, record.Name, record.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func newDecksExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <deck id>",
		Short: "Export a saved deck as a plain-text deck list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			record, err := a.store.Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("load deck: %w", err)
			}
			if record == nil {
				return fmt.Errorf("no deck with id %s", args[0])
			}

			decoded, err := storage.DecodeDeck(record.Payload)
			if err != nil {
				return fmt.Errorf("decode deck: %w", err)
			}
			d, err := a.hydrateDecoded(ctx, record.Name, decoded)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() { _ = file.Close() }()
				out = file
			}
			return deckio.Write(out, d)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func newDecksDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deck id>",
		Short: "Delete a saved deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete deck: %w", err)
			}
			fmt.Printf("Deleted %s.\n", args[0])
			return nil
		},
	}
}
