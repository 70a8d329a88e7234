// Package main provides a standalone REST API server for the deck
// builder. It skips the CLI layer entirely, which makes it the target
// for frontend E2E tests.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mastanley13/MTGDeck-sub000/internal/api"
	"github.com/mastanley13/MTGDeck-sub000/internal/assembly"
	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/events"
	"github.com/mastanley13/MTGDeck-sub000/internal/generator"
	"github.com/mastanley13/MTGDeck-sub000/internal/scryfall"
	"github.com/mastanley13/MTGDeck-sub000/internal/storage"
)

var (
	host   = flag.String("host", "127.0.0.1", "API server host")
	port   = flag.Int("port", 8787, "API server port")
	dbPath = flag.String("db-path", "", "Database path (default: ~/.mtgdeck/decks.db)")
	debug  = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	finalDBPath := *dbPath
	if finalDBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Fatal("failed to get home directory", zap.Error(err))
		}
		finalDBPath = filepath.Join(home, ".mtgdeck", "decks.db")
	}
	if err := os.MkdirAll(filepath.Dir(finalDBPath), 0o755); err != nil {
		logger.Fatal("failed to create database directory", zap.Error(err))
	}

	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("error closing database", zap.Error(err))
		}
	}()

	client := scryfall.NewClient("", "")
	lookup := cardlookup.NewService(client, storage.NewCardCache(db), cardlookup.DefaultStaleAfter, logger)

	dispatcher := events.NewEventDispatcher(logger)
	dispatcher.Register(events.NewLoggingObserver(logger, *debug))

	ollamaClient := generator.NewOllamaClient(generator.DefaultOllamaConfig())
	orchestrator := assembly.NewOrchestrator(
		generator.NewDeckGenerator(ollamaClient, logger),
		lookup,
		dispatcher,
		logger,
	)

	server := api.NewServer(&api.Config{Host: *host, Port: *port}, &api.Services{
		DeckStore: storage.NewDeckStore(db, logger),
		Lookup:    lookup,
		Searcher:  client,
		Assembler: orchestrator,
	}, logger)

	if err := server.Start(); err != nil {
		logger.Fatal("failed to start API server", zap.Error(err))
	}

	fmt.Printf("API server running at http://%s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("error during shutdown", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
