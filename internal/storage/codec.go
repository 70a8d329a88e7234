package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// MaxPayloadChars is the hard ceiling on an encoded deck payload.
// A 100-card deck encodes well under this; hitting it means runaway
// metadata, not a bigger deck.
const MaxPayloadChars = 12000

// ErrPayloadTooLarge means the encoded deck exceeded MaxPayloadChars.
var ErrPayloadTooLarge = errors.New("encoded deck payload exceeds size limit")

// The wire format keeps only what cannot be re-derived from the card
// database: identity, quantity, and any manual category override.
// Single-letter keys keep a full 100-card deck around 3KB.
type wireDeck struct {
	Name        string      `json:"n,omitempty"`
	Description string      `json:"d,omitempty"`
	CommanderID string      `json:"c,omitempty"`
	Board       []wireEntry `json:"b"`
}

type wireEntry struct {
	ID       string `json:"i"`
	Quantity int    `json:"q,omitempty"`
	Category string `json:"g,omitempty"`
}

// DecodedDeck is the skeleton recovered from a payload. Card IDs must
// be hydrated back into full cards through the lookup service.
type DecodedDeck struct {
	Name        string
	Description string
	CommanderID string
	Entries     []DecodedEntry
}

// DecodedEntry is one mainboard line of a decoded payload.
type DecodedEntry struct {
	ID       string
	Quantity int
	Category string
}

// EncodeDeck serializes a deck into the compact wire payload. Returns
// ErrPayloadTooLarge when the result would not fit in a deck record.
func EncodeDeck(d deck.Deck) (string, error) {
	wire := wireDeck{
		Name:        d.Name,
		Description: d.Description,
		Board:       make([]wireEntry, 0, len(d.Cards)),
	}
	if d.Commander != nil {
		wire.CommanderID = d.Commander.ID
	}
	for _, entry := range d.Cards {
		we := wireEntry{ID: entry.ID, Category: d.CardCategories[entry.ID]}
		if entry.Quantity > 1 {
			we.Quantity = entry.Quantity
		}
		wire.Board = append(wire.Board, we)
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode deck: %w", err)
	}
	if len(data) > MaxPayloadChars {
		return "", fmt.Errorf("%w: %d chars, limit %d", ErrPayloadTooLarge, len(data), MaxPayloadChars)
	}
	return string(data), nil
}

// DecodeDeck parses a wire payload back into a deck skeleton.
func DecodeDeck(payload string) (DecodedDeck, error) {
	var wire wireDeck
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return DecodedDeck{}, fmt.Errorf("decode deck payload: %w", err)
	}

	decoded := DecodedDeck{
		Name:        wire.Name,
		Description: wire.Description,
		CommanderID: wire.CommanderID,
		Entries:     make([]DecodedEntry, 0, len(wire.Board)),
	}
	for _, we := range wire.Board {
		if we.ID == "" {
			continue
		}
		qty := we.Quantity
		if qty < 1 {
			qty = 1
		}
		decoded.Entries = append(decoded.Entries, DecodedEntry{
			ID:       we.ID,
			Quantity: qty,
			Category: we.Category,
		})
	}
	return decoded, nil
}
