package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/config"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/scryfall"
	"github.com/mastanley13/MTGDeck-sub000/internal/storage"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deckbuilder",
		Short: "Commander deck building toolkit",
		Long: `deckbuilder validates Commander deck lists, assembles new decks
around a commander with a local language model, renders deck reports,
and serves the REST API.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newValidateCmd(),
		newBuildCmd(),
		newStatsCmd(),
		newServeCmd(),
		newWatchCmd(),
		newDecksCmd(),
		newBackupCmd(),
		newRestoreCmd(),
	)
	return cmd
}

// app bundles the long-lived collaborators the subcommands share.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *storage.DB
	store  *storage.DeckStore
	client *scryfall.Client
	lookup *cardlookup.Service
}

// newApp loads configuration and opens the database and card lookup
// stack. Callers must Close.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(cfg.App.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	dbConfig := storage.DefaultConfig(dbPath)
	dbConfig.AutoMigrate = cfg.Storage.AutoMigrate
	db, err := storage.Open(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	staleAfter, err := cfg.GetStaleAfter()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("parse stale_after: %w", err)
	}

	client := scryfall.NewClient(cfg.Scryfall.BaseURL, cfg.Scryfall.UserAgent)
	lookup := cardlookup.NewService(client, storage.NewCardCache(db), staleAfter, logger)

	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		store:  storage.NewDeckStore(db, logger),
		client: client,
		lookup: lookup,
	}, nil
}

// hydrateDecoded resolves a decoded payload skeleton back into a full
// deck through the card lookup service.
func (a *app) hydrateDecoded(ctx context.Context, name string, decoded storage.DecodedDeck) (deck.Deck, error) {
	d := deck.New()
	d.Name = name
	d.Description = decoded.Description

	if decoded.CommanderID != "" {
		commander, err := a.lookup.ResolveByID(ctx, decoded.CommanderID)
		if err != nil {
			return deck.Deck{}, fmt.Errorf("resolve commander: %w", err)
		}
		d = deck.SetCommander(d, &commander)
	}
	for _, entry := range decoded.Entries {
		card, err := a.lookup.ResolveByID(ctx, entry.ID)
		if err != nil {
			return deck.Deck{}, fmt.Errorf("resolve %s: %w", entry.ID, err)
		}
		d = deck.AddCard(d, card, entry.Quantity)
		if entry.Category != "" {
			d = deck.SetCategoryOverride(d, card, deck.Category(entry.Category))
		}
	}
	return d, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("error closing database", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
