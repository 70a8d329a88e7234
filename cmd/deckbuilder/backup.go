package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mastanley13/MTGDeck-sub000/internal/storage"
)

// passphraseEnv names the environment variable holding the backup
// passphrase. Flags would leak it into shell history.
const passphraseEnv = "MTGDECK_BACKUP_PASSPHRASE"

// backupFile is the serialized form of a deck backup.
type backupFile struct {
	Version int                   `json:"version"`
	UserID  string                `json:"user_id"`
	Records []*storage.DeckRecord `json:"records"`
}

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup <output file>",
		Short: "Export all saved decks to an encrypted backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase := os.Getenv(passphraseEnv)
			if passphrase == "" {
				return fmt.Errorf("set %s to encrypt the backup", passphraseEnv)
			}

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
				return errors.New("no saved decks to back up")
			}

			data, err := json.Marshal(backupFile{
				Version: 1,
				UserID:  a.cfg.App.UserID,
				Records: records,
			})
			if err != nil {
				return fmt.Errorf("encode backup: %w", err)
			}

			encrypted, err := storage.EncryptData(data, storage.DefaultEncryptionConfig(passphrase))
			if err != nil {
				return fmt.Errorf("encrypt backup: %w", err)
			}
			if err := os.WriteFile(args[0], encrypted, 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}

			fmt.Printf("Backed up %d decks to %s.\n", len(records), args[0])
			return nil
		},
	}
	return cmd
}

func newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup file>",
		Short: "Restore decks from an encrypted backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase := os.Getenv(passphraseEnv)
			if passphrase == "" {
				return fmt.Errorf("set %s to decrypt the backup", passphraseEnv)
			}

			encrypted, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			data, err := storage.DecryptData(encrypted, storage.DefaultEncryptionConfig(passphrase))
			if err != nil {
				return fmt.Errorf("decrypt backup: %w", err)
			}

			var backup backupFile
			if err := json.Unmarshal(data, &backup); err != nil {
				return fmt.Errorf("decode backup: %w", err)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			restored := 0
			for _, record := range backup.Records {
				decoded, err := storage.DecodeDeck(record.Payload)
				if err != nil {
					fmt.Printf("  ! skipping %s: %v\n", record.ID, err)
					continue
				}
				d, err := a.hydrateDecoded(ctx, record.Name, decoded)
				if err != nil {
					fmt.Printf("  ! skipping %s: %v\n", record.ID, err)
					continue
				}
				if _, err := a.store.Save(ctx, a.cfg.App.UserID, record.ID, d); err != nil {
					fmt.Printf("  ! skipping %s: %v\n", record.ID, err)
					continue
				}
				restored++
			}

			fmt.Printf("Restored %d of %d decks.\n", restored, len(backup.Records))
			return nil
		},
	}
}
