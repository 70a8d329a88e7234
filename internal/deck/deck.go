package deck

import "time"

// DefaultName is applied to decks saved without an explicit name.
const DefaultName = "Untitled Deck"

// Deck is the aggregate under validation and storage. The commander is
// kept separate from the mainboard and is never part of Cards.
type Deck struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Commander   *Card       `json:"commander,omitempty"`
	Cards       []CardEntry `json:"cards"`
	// CardCategories maps card IDs to display-category overrides. Kept at
	// the deck level because card objects may be reconstructed from a
	// cache that drops per-card custom fields.
	CardCategories map[string]string `json:"card_categories,omitempty"`
	LastUpdated    time.Time         `json:"last_updated"`
}

// New returns an empty deck with metadata defaults filled in.
func New() Deck {
	return Deck{
		Name:           DefaultName,
		Cards:          []CardEntry{},
		CardCategories: map[string]string{},
		LastUpdated:    time.Now(),
	}
}

// clone returns a deep-enough copy for value-semantics transitions:
// the slice and map are copied, card values are shared (they are
// treated as immutable).
func (d Deck) clone() Deck {
	out := d
	out.Cards = make([]CardEntry, len(d.Cards))
	copy(out.Cards, d.Cards)
	out.CardCategories = make(map[string]string, len(d.CardCategories))
	for id, cat := range d.CardCategories {
		out.CardCategories[id] = cat
	}
	return out
}

func (d *Deck) touch() {
	d.LastUpdated = time.Now()
}

// AddCard adds qty copies of a card to the mainboard. If an entry with
// the same ID already exists its quantity is increased instead of a
// second entry being appended. A qty below 1 is treated as 1. Adding
// the commander itself is a no-op; the commander never lives in the
// mainboard.
func AddCard(d Deck, c Card, qty int) Deck {
	if c.ID == "" {
		return d
	}
	if d.Commander != nil && d.Commander.ID == c.ID {
		return d
	}
	if qty < 1 {
		qty = 1
	}
	out := d.clone()
	for i := range out.Cards {
		if out.Cards[i].ID == c.ID {
			out.Cards[i].Quantity += qty
			out.touch()
			return out
		}
	}
	out.Cards = append(out.Cards, CardEntry{Card: c, Quantity: qty})
	out.touch()
	return out
}

// RemoveCard removes the entry with the given ID and prunes its
// category override.
func RemoveCard(d Deck, cardID string) Deck {
	out := d.clone()
	kept := out.Cards[:0]
	for _, entry := range out.Cards {
		if entry.ID != cardID {
			kept = append(kept, entry)
		}
	}
	out.Cards = kept
	delete(out.CardCategories, cardID)
	out.touch()
	return out
}

// SetQuantity sets the copy count for an existing entry. A qty below 1
// removes the entry.
func SetQuantity(d Deck, cardID string, qty int) Deck {
	if qty < 1 {
		return RemoveCard(d, cardID)
	}
	out := d.clone()
	for i := range out.Cards {
		if out.Cards[i].ID == cardID {
			out.Cards[i].Quantity = qty
			out.touch()
			return out
		}
	}
	return d
}

// SetCommander designates the deck's commander. Any mainboard entry with
// the same ID is removed so the card is never counted twice.
func SetCommander(d Deck, c *Card) Deck {
	out := d.clone()
	out.Commander = c
	if c != nil {
		kept := out.Cards[:0]
		for _, entry := range out.Cards {
			if entry.ID != c.ID {
				kept = append(kept, entry)
			}
		}
		out.Cards = kept
	}
	out.touch()
	return out
}

// ReplaceMainboard swaps the whole card list in one transition. Used by
// the assembly pipeline for its atomic commit. Category overrides for
// IDs that no longer exist are pruned.
func ReplaceMainboard(d Deck, cards []CardEntry) Deck {
	out := d.clone()
	out.Cards = make([]CardEntry, len(cards))
	copy(out.Cards, cards)
	present := make(map[string]bool, len(cards))
	for _, entry := range cards {
		present[entry.ID] = true
	}
	for id := range out.CardCategories {
		if !present[id] {
			delete(out.CardCategories, id)
		}
	}
	out.touch()
	return out
}

// Reset returns the deck to its empty initial state, keeping nothing.
func Reset(Deck) Deck {
	return New()
}
