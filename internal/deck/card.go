// Package deck defines the Commander deck data model and the pure
// functions that operate on it: classification, counting, structural
// repair, and deck transitions.
package deck

// Card represents a single printing as returned by the card data provider.
// Two cards with the same ID are the same printing; deck-building
// uniqueness is enforced at the name level, since reprints carry
// different IDs but are the same card for singleton purposes.
type Card struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	ManaCost      string            `json:"mana_cost,omitempty"`
	CMC           float64           `json:"cmc,omitempty"`
	TypeLine      string            `json:"type_line,omitempty"`
	OracleText    string            `json:"oracle_text,omitempty"`
	Colors        []string          `json:"colors,omitempty"`
	ColorIdentity []string          `json:"color_identity,omitempty"`
	Legalities    map[string]string `json:"legalities,omitempty"`
	CardFaces     []CardFace        `json:"card_faces,omitempty"`
	ImageURIs     *ImageURIs        `json:"image_uris,omitempty"`

	// CustomCategory is a user-assigned display category that overrides
	// the type-line derived classification when non-empty.
	CustomCategory string `json:"custom_category,omitempty"`
}

// CardFace represents one face of a multi-faced or split card.
type CardFace struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost,omitempty"`
	TypeLine   string     `json:"type_line,omitempty"`
	OracleText string     `json:"oracle_text,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs contains URLs for card images in various sizes.
type ImageURIs struct {
	Small  string `json:"small,omitempty"`
	Normal string `json:"normal,omitempty"`
	Large  string `json:"large,omitempty"`
}

// CardEntry is one mainboard slot: a card plus how many copies it holds.
type CardEntry struct {
	Card
	Quantity int `json:"quantity"`
}

// CommanderLegality reports the card's explicit Commander-format legality.
// An absent legalities map or missing format key returns an empty string,
// which callers treat as "cannot verify" rather than a violation.
func (c Card) CommanderLegality() string {
	if c.Legalities == nil {
		return ""
	}
	return c.Legalities["commander"]
}

// HasColorIdentityWithin reports whether every color in the card's
// identity appears in the given envelope. A colorless card (empty
// identity) is always within any envelope.
func (c Card) HasColorIdentityWithin(envelope []string) bool {
	if len(c.ColorIdentity) == 0 {
		return true
	}
	allowed := make(map[string]bool, len(envelope))
	for _, color := range envelope {
		allowed[color] = true
	}
	for _, color := range c.ColorIdentity {
		if !allowed[color] {
			return false
		}
	}
	return true
}
