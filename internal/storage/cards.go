package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// CachedCard is a cached card together with its cache timestamp, so
// callers can decide whether the data is stale.
type CachedCard struct {
	Card      deck.Card
	UpdatedAt time.Time
}

// CardCache stores resolved card data locally so repeated lookups do
// not go back to the network.
type CardCache struct {
	db *DB
}

// NewCardCache creates a card cache over the given database.
func NewCardCache(db *DB) *CardCache {
	return &CardCache{db: db}
}

// Put saves or refreshes a card in the cache. Cards without an ID are
// rejected; they cannot be looked up again.
func (c *CardCache) Put(ctx context.Context, card deck.Card) error {
	if card.ID == "" {
		return fmt.Errorf("card id is required")
	}

	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	query := `
		INSERT INTO card_cache (id, name, data, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := c.db.Conn().ExecContext(ctx, query, card.ID, card.Name, string(data)); err != nil {
		return fmt.Errorf("failed to cache card: %w", err)
	}
	return nil
}

// GetByID retrieves a cached card by Scryfall ID. Returns nil when the
// card is not cached.
func (c *CardCache) GetByID(ctx context.Context, id string) (*CachedCard, error) {
	return c.get(ctx, `SELECT data, updated_at FROM card_cache WHERE id = ?`, id)
}

// GetByName retrieves a cached card by exact name, case-insensitively.
// Returns nil when the card is not cached.
func (c *CardCache) GetByName(ctx context.Context, name string) (*CachedCard, error) {
	return c.get(ctx, `SELECT data, updated_at FROM card_cache WHERE name = ? COLLATE NOCASE`, name)
}

func (c *CardCache) get(ctx context.Context, query, arg string) (*CachedCard, error) {
	var (
		data      string
		updatedAt time.Time
	)
	err := c.db.Conn().QueryRowContext(ctx, query, arg).Scan(&data, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached card: %w", err)
	}

	var card deck.Card
	if err := json.Unmarshal([]byte(data), &card); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached card: %w", err)
	}
	return &CachedCard{Card: card, UpdatedAt: updatedAt}, nil
}

// Count reports the number of cached cards.
func (c *CardCache) Count(ctx context.Context) (int, error) {
	var count int
	if err := c.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM card_cache`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached cards: %w", err)
	}
	return count, nil
}

// Prune removes cache entries older than the given duration.
func (c *CardCache) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	seconds := int64(olderThan.Seconds())
	result, err := c.db.Conn().ExecContext(ctx,
		`DELETE FROM card_cache WHERE unixepoch(updated_at) <= unixepoch('now', '-' || ? || ' seconds')`,
		seconds)
	if err != nil {
		return 0, fmt.Errorf("failed to prune card cache: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned cards: %w", err)
	}
	return removed, nil
}
