package deck

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrNotADeck is returned by Repair when the input is not an object at
// all. Every other malformation is corrected best-effort, never fatal.
var ErrNotADeck = errors.New("deck record is not an object")

// Repair takes a possibly-malformed deck record, typically decoded from
// storage or a minimized wire payload, and returns a corrected Deck.
// Dropped entries are silently excluded; callers wanting visibility
// should log the raw record before repairing.
//
// Repair is idempotent: repairing its own output changes nothing.
func Repair(raw any) (Deck, error) {
	switch v := raw.(type) {
	case Deck:
		return Normalize(v), nil
	case *Deck:
		if v == nil {
			return Deck{}, ErrNotADeck
		}
		return Normalize(*v), nil
	case map[string]any:
		return Normalize(coerceDeck(v)), nil
	default:
		return Deck{}, ErrNotADeck
	}
}

// Normalize applies the structural-repair steps to a typed deck:
//
//  1. a nil card list becomes an empty one
//  2. entries without a non-empty ID are dropped
//  3. mainboard entries sharing the commander's ID are removed
//  4. quantities below 1 become 1
//  5. metadata defaults are filled in, dangling category overrides pruned
//
// Commander dedup runs after invalid-entry filtering so a malformed
// duplicate cannot hide behind a missing ID.
func Normalize(d Deck) Deck {
	out := d

	cards := make([]CardEntry, 0, len(d.Cards))
	for _, entry := range d.Cards {
		if entry.ID == "" {
			continue
		}
		if out.Commander != nil && entry.ID == out.Commander.ID {
			continue
		}
		if entry.Quantity < 1 {
			entry.Quantity = 1
		}
		cards = append(cards, entry)
	}
	out.Cards = cards

	if out.Name == "" {
		out.Name = DefaultName
	}
	if out.CardCategories == nil {
		out.CardCategories = map[string]string{}
	} else {
		present := make(map[string]bool, len(out.Cards))
		for _, entry := range out.Cards {
			present[entry.ID] = true
		}
		categories := make(map[string]string, len(out.CardCategories))
		for id, cat := range out.CardCategories {
			if present[id] {
				categories[id] = cat
			}
		}
		out.CardCategories = categories
	}
	if out.LastUpdated.IsZero() {
		out.LastUpdated = time.Now()
	}
	return out
}

// coerceDeck builds a typed Deck from an untyped record, discarding
// whatever cannot be coerced rather than failing.
func coerceDeck(raw map[string]any) Deck {
	var d Deck

	if name, ok := raw["name"].(string); ok {
		d.Name = name
	}
	if desc, ok := raw["description"].(string); ok {
		d.Description = desc
	}

	// A commander that is present but not an object is discarded, not
	// treated as a repair failure.
	if rawCommander, ok := raw["commander"]; ok {
		if m, ok := rawCommander.(map[string]any); ok {
			if card := coerceCard(m); card != nil {
				d.Commander = card
			}
		}
	}

	// A cards field that is not an array is replaced with an empty list.
	if rawCards, ok := raw["cards"].([]any); ok {
		for _, rawEntry := range rawCards {
			m, ok := rawEntry.(map[string]any)
			if !ok {
				continue
			}
			card := coerceCard(m)
			if card == nil {
				continue
			}
			entry := CardEntry{Card: *card}
			if qty, ok := m["quantity"].(float64); ok {
				entry.Quantity = int(qty)
			}
			d.Cards = append(d.Cards, entry)
		}
	}

	if rawCategories, ok := raw["card_categories"].(map[string]any); ok {
		d.CardCategories = make(map[string]string, len(rawCategories))
		for id, cat := range rawCategories {
			if s, ok := cat.(string); ok {
				d.CardCategories[id] = s
			}
		}
	}

	if ts, ok := raw["last_updated"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			d.LastUpdated = parsed
		}
	}
	return d
}

// coerceCard decodes an untyped card record. Entries lacking a
// non-empty string ID are rejected.
func coerceCard(m map[string]any) *Card {
	id, ok := m["id"].(string)
	if !ok || id == "" {
		return nil
	}
	// JSON round-trip handles the long tail of optional fields without
	// field-by-field coercion; on a type mismatch the card falls back to
	// its identifying fields only.
	data, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	var card Card
	if err := json.Unmarshal(data, &card); err != nil {
		card = Card{ID: id}
		if name, ok := m["name"].(string); ok {
			card.Name = name
		}
	}
	card.ID = id
	return &card
}
