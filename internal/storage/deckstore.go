package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// DeckRecord is one persisted deck row.
type DeckRecord struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Payload      string    `json:"payload"`
	PayloadChars int       `json:"payload_chars"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DeckStore persists decks as compact payloads keyed by owner.
type DeckStore struct {
	db     *DB
	logger *zap.Logger
}

// NewDeckStore creates a deck store. A nil logger disables logging.
func NewDeckStore(db *DB, logger *zap.Logger) *DeckStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeckStore{db: db, logger: logger}
}

// Save encodes and upserts a deck for the given user. An empty id
// creates a new record with a generated UUID. Encoding failures,
// including the payload size ceiling, abort the save untouched.
func (s *DeckStore) Save(ctx context.Context, userID, id string, d deck.Deck) (*DeckRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	payload, err := EncodeDeck(d)
	if err != nil {
		return nil, err
	}
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO deck_records (id, user_id, name, payload, payload_chars, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			payload = excluded.payload,
			payload_chars = excluded.payload_chars,
			updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Conn().ExecContext(ctx, query, id, userID, d.Name, payload, len(payload)); err != nil {
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}

	s.logger.Debug("deck saved",
		zap.String("deck_id", id),
		zap.String("user_id", userID),
		zap.Int("payload_chars", len(payload)))

	return s.Get(ctx, id)
}

// Get retrieves a deck record by ID. Returns nil when absent.
func (s *DeckStore) Get(ctx context.Context, id string) (*DeckRecord, error) {
	query := `
		SELECT id, user_id, name, payload, payload_chars, updated_at
		FROM deck_records
		WHERE id = ?
	`

	var rec DeckRecord
	err := s.db.Conn().QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.UserID, &rec.Name, &rec.Payload, &rec.PayloadChars, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	return &rec, nil
}

// ListForUser retrieves all deck records owned by a user, newest first.
func (s *DeckStore) ListForUser(ctx context.Context, userID string) ([]*DeckRecord, error) {
	query := `
		SELECT id, user_id, name, payload, payload_chars, updated_at
		FROM deck_records
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`

	rows, err := s.db.Conn().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*DeckRecord
	for rows.Next() {
		var rec DeckRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Payload, &rec.PayloadChars, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deck: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating decks: %w", err)
	}
	return records, nil
}

// Delete removes a deck record. Deleting an absent record is not an
// error.
func (s *DeckStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM deck_records WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	s.logger.Debug("deck deleted", zap.String("deck_id", id))
	return nil
}
