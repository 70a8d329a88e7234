// Package cardlookup resolves card names and IDs into full card data,
// reading through a local cache before hitting the Scryfall API.
package cardlookup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/scryfall"
	"github.com/mastanley13/MTGDeck-sub000/internal/storage"
)

// ErrNotFound means the name or ID does not resolve to any card.
var ErrNotFound = errors.New("card not found")

// DefaultStaleAfter is how long cached card data stays authoritative.
// Legality changes with banlist updates, so a week is the ceiling.
const DefaultStaleAfter = 7 * 24 * time.Hour

// maxConcurrentFetches bounds parallel API calls during batch
// resolution. The client rate limiter serializes the wire anyway; this
// keeps goroutine count predictable.
const maxConcurrentFetches = 8

// Fetcher is the API surface the service needs from the Scryfall
// client.
type Fetcher interface {
	GetCard(ctx context.Context, id string) (*scryfall.Card, error)
	GetCardByName(ctx context.Context, name string, fuzzy bool) (*scryfall.Card, error)
}

// Cache is the local card cache surface.
type Cache interface {
	GetByID(ctx context.Context, id string) (*storage.CachedCard, error)
	GetByName(ctx context.Context, name string) (*storage.CachedCard, error)
	Put(ctx context.Context, card deck.Card) error
}

// Service resolves cards cache-first.
type Service struct {
	fetcher    Fetcher
	cache      Cache
	staleAfter time.Duration
	logger     *zap.Logger
}

// NewService creates a lookup service. A nil cache disables caching,
// a zero staleAfter selects DefaultStaleAfter, and a nil logger
// disables logging.
func NewService(fetcher Fetcher, cache Cache, staleAfter time.Duration, logger *zap.Logger) *Service {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:    fetcher,
		cache:      cache,
		staleAfter: staleAfter,
		logger:     logger,
	}
}

// ResolveByID resolves a card by its Scryfall ID.
func (s *Service) ResolveByID(ctx context.Context, id string) (deck.Card, error) {
	if id == "" {
		return deck.Card{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	return s.resolve(ctx,
		func() (*storage.CachedCard, error) {
			if s.cache == nil {
				return nil, nil
			}
			return s.cache.GetByID(ctx, id)
		},
		func() (*scryfall.Card, error) {
			return s.fetcher.GetCard(ctx, id)
		})
}

// ResolveByName resolves a card by name with fuzzy matching, so the
// slightly-off names a generator produces still land on real cards.
func (s *Service) ResolveByName(ctx context.Context, name string) (deck.Card, error) {
	if name == "" {
		return deck.Card{}, fmt.Errorf("%w: empty name", ErrNotFound)
	}
	return s.resolve(ctx,
		func() (*storage.CachedCard, error) {
			if s.cache == nil {
				return nil, nil
			}
			return s.cache.GetByName(ctx, name)
		},
		func() (*scryfall.Card, error) {
			return s.fetcher.GetCardByName(ctx, name, true)
		})
}

// resolve implements the cache-through policy: fresh cache hit wins,
// otherwise fetch and refresh the cache. When the fetch fails with a
// transport error and a stale copy exists, the stale copy is returned
// rather than failing the caller.
func (s *Service) resolve(ctx context.Context, fromCache func() (*storage.CachedCard, error), fetch func() (*scryfall.Card, error)) (deck.Card, error) {
	cached, err := fromCache()
	if err != nil {
		s.logger.Warn("card cache read failed", zap.Error(err))
		cached = nil
	}
	if cached != nil && time.Since(cached.UpdatedAt) < s.staleAfter {
		return cached.Card, nil
	}

	fetched, err := fetch()
	if err != nil {
		if scryfall.IsNotFound(err) {
			return deck.Card{}, ErrNotFound
		}
		if cached != nil {
			s.logger.Warn("fetch failed, serving stale cache entry", zap.Error(err))
			return cached.Card, nil
		}
		return deck.Card{}, fmt.Errorf("resolve card: %w", err)
	}

	card := fetched.ToDeckCard()
	if s.cache != nil {
		if err := s.cache.Put(ctx, card); err != nil {
			s.logger.Warn("card cache write failed", zap.String("card", card.Name), zap.Error(err))
		}
	}
	return card, nil
}

// BatchResult is the outcome of a batch name resolution.
type BatchResult struct {
	// Resolved holds the cards that resolved, in input order.
	Resolved []deck.Card

	// Unresolved holds the input names that did not match any card.
	Unresolved []string
}

// ResolveAll resolves a batch of names concurrently. Unknown names go
// to Unresolved rather than failing the batch; any other error aborts.
func (s *Service) ResolveAll(ctx context.Context, names []string) (BatchResult, error) {
	type slot struct {
		card deck.Card
		ok   bool
	}
	slots := make([]slot, len(names))

	var mu sync.Mutex
	var unresolved []string

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, name := range names {
		g.Go(func() error {
			card, err := s.ResolveByName(gctx, name)
			if errors.Is(err, ErrNotFound) {
				mu.Lock()
				unresolved = append(unresolved, name)
				mu.Unlock()
				return nil
			}
			if err != nil {
				return err
			}
			slots[i] = slot{card: card, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{Unresolved: unresolved}
	for _, sl := range slots {
		if sl.ok {
			result.Resolved = append(result.Resolved, sl.card)
		}
	}

	s.logger.Debug("batch resolution finished",
		zap.Int("requested", len(names)),
		zap.Int("resolved", len(result.Resolved)),
		zap.Int("unresolved", len(result.Unresolved)))
	return result, nil
}
