// Package watcher monitors a directory of plain-text deck lists and
// validates each list as it changes.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/deckio"
	"github.com/mastanley13/MTGDeck-sub000/internal/events"
	"github.com/mastanley13/MTGDeck-sub000/internal/validator"
)

// debounceWindow coalesces the burst of write events editors emit for
// a single save.
const debounceWindow = 500 * time.Millisecond

// Resolver turns the names of a parsed deck list into card data.
type Resolver interface {
	ResolveAll(ctx context.Context, names []string) (cardlookup.BatchResult, error)
	ResolveByName(ctx context.Context, name string) (deck.Card, error)
}

// Report is the outcome of checking one deck list file.
type Report struct {
	Path       string
	DeckName   string
	Checks     []validator.CheckResult
	Unresolved []string
}

// Watcher validates deck list files as they appear or change.
type Watcher struct {
	dir      string
	resolver Resolver
	dispatch *events.EventDispatcher
	logger   *zap.Logger

	// OnReport, when set, receives every validation report.
	OnReport func(Report)
}

// New creates a watcher for the given directory.
func New(dir string, resolver Resolver, dispatch *events.EventDispatcher, logger *zap.Logger) *Watcher {
	if dispatch == nil {
		dispatch = events.NewEventDispatcher(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		dir:      dir,
		resolver: resolver,
		dispatch: dispatch,
		logger:   logger,
	}
}

// Run watches until the context is cancelled. Existing deck lists are
// checked once at startup.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}

	w.checkExisting(ctx)

	// Debounce per path: editors fire several writes per save.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounceWindow / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isDeckList(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", zap.Error(err))

		case <-ticker.C:
			now := time.Now()
			for path, stamp := range pending {
				if now.Sub(stamp) < debounceWindow {
					continue
				}
				delete(pending, path)
				w.checkFile(ctx, path)
			}
		}
	}
}

func (w *Watcher) checkExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("cannot list watch directory", zap.Error(err))
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isDeckList(entry.Name()) {
			continue
		}
		w.checkFile(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// checkFile parses, resolves, and validates one deck list, logging the
// verdict and forwarding the report.
func (w *Watcher) checkFile(ctx context.Context, path string) {
	w.dispatch.Dispatch(events.Event{
		Type:      events.TypeDeckFileDetected,
		TypedData: events.DeckFileDetectedEvent{Path: path},
		Context:   ctx,
	})

	file, err := os.Open(path)
	if err != nil {
		w.logger.Warn("cannot open deck list", zap.String("path", path), zap.Error(err))
		return
	}
	list, err := deckio.Parse(file)
	_ = file.Close()
	if err != nil {
		w.logger.Warn("deck list does not parse", zap.String("path", path), zap.Error(err))
		return
	}

	report := Report{Path: path, DeckName: list.Name}

	var commander *deck.Card
	if list.Commander != "" {
		card, err := w.resolver.ResolveByName(ctx, list.Commander)
		switch {
		case err == nil:
			commander = &card
		case errors.Is(err, cardlookup.ErrNotFound):
			report.Unresolved = append(report.Unresolved, list.Commander)
		default:
			w.logger.Warn("commander resolution failed", zap.String("path", path), zap.Error(err))
			return
		}
	}

	names := make([]string, 0, len(list.Entries))
	for _, line := range list.Entries {
		names = append(names, line.Name)
	}
	batch, err := w.resolver.ResolveAll(ctx, names)
	if err != nil {
		w.logger.Warn("deck list resolution failed", zap.String("path", path), zap.Error(err))
		return
	}
	report.Unresolved = append(report.Unresolved, batch.Unresolved...)

	// Re-apply the listed quantities to the resolved cards.
	quantities := make(map[string]int, len(list.Entries))
	for _, line := range list.Entries {
		quantities[strings.ToLower(line.Name)] += line.Quantity
	}
	cards := make([]deck.CardEntry, 0, len(batch.Resolved))
	for _, card := range batch.Resolved {
		qty := quantities[strings.ToLower(card.Name)]
		if qty < 1 {
			qty = 1
		}
		cards = append(cards, deck.CardEntry{Card: card, Quantity: qty})
	}

	report.Checks = validator.Validate(commander, cards)

	valid := validator.IsValid(commander, cards)
	w.logger.Info("deck list checked",
		zap.String("path", path),
		zap.Bool("valid", valid),
		zap.Int("unresolved", len(report.Unresolved)))

	if w.OnReport != nil {
		w.OnReport(report)
	}
}

func isDeckList(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".deck", ".dec":
		return true
	}
	return false
}
