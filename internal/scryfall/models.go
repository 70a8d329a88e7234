package scryfall

import (
	"errors"
	"fmt"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// Card is the subset of Scryfall's card object the deck builder
// consumes. Legalities decode straight into a format→status map.
type Card struct {
	ID            string            `json:"id"`
	OracleID      string            `json:"oracle_id"`
	Name          string            `json:"name"`
	ManaCost      string            `json:"mana_cost,omitempty"`
	CMC           float64           `json:"cmc"`
	TypeLine      string            `json:"type_line"`
	OracleText    string            `json:"oracle_text,omitempty"`
	Colors        []string          `json:"colors,omitempty"`
	ColorIdentity []string          `json:"color_identity"`
	Legalities    map[string]string `json:"legalities"`
	CardFaces     []CardFace        `json:"card_faces,omitempty"`
	ImageURIs     *ImageURIs        `json:"image_uris,omitempty"`
	SetCode       string            `json:"set"`
	Rarity        string            `json:"rarity"`
}

// CardFace is one face of a multi-faced card.
type CardFace struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost,omitempty"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text,omitempty"`
	ImageURIs  *ImageURIs `json:"image_uris,omitempty"`
}

// ImageURIs carries card image URLs in the sizes the UI uses.
type ImageURIs struct {
	Small  string `json:"small"`
	Normal string `json:"normal"`
	Large  string `json:"large"`
}

// SearchResult is one page of search results.
type SearchResult struct {
	Object     string `json:"object"`
	TotalCards int    `json:"total_cards"`
	HasMore    bool   `json:"has_more"`
	NextPage   string `json:"next_page,omitempty"`
	Data       []Card `json:"data"`
}

// ToDeckCard converts the API shape into the deck core's Card.
func (c *Card) ToDeckCard() deck.Card {
	out := deck.Card{
		ID:            c.ID,
		Name:          c.Name,
		ManaCost:      c.ManaCost,
		CMC:           c.CMC,
		TypeLine:      c.TypeLine,
		OracleText:    c.OracleText,
		Colors:        c.Colors,
		ColorIdentity: c.ColorIdentity,
		Legalities:    c.Legalities,
	}
	if c.ImageURIs != nil {
		out.ImageURIs = &deck.ImageURIs{
			Small:  c.ImageURIs.Small,
			Normal: c.ImageURIs.Normal,
			Large:  c.ImageURIs.Large,
		}
	}
	for _, face := range c.CardFaces {
		deckFace := deck.CardFace{
			Name:       face.Name,
			ManaCost:   face.ManaCost,
			TypeLine:   face.TypeLine,
			OracleText: face.OracleText,
		}
		if face.ImageURIs != nil {
			deckFace.ImageURIs = &deck.ImageURIs{
				Small:  face.ImageURIs.Small,
				Normal: face.ImageURIs.Normal,
				Large:  face.ImageURIs.Large,
			}
		}
		out.CardFaces = append(out.CardFaces, deckFace)
	}
	return out
}

// APIError is a structured error response from the Scryfall API.
type APIError struct {
	Object   string   `json:"object"`
	Code     string   `json:"code"`
	Status   int      `json:"status"`
	Details  string   `json:"details"`
	Warnings []string `json:"warnings,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("scryfall API error (HTTP %d): %s", e.Status, e.Details)
	}
	return fmt.Sprintf("scryfall API error (HTTP %d): %s", e.Status, e.Code)
}

// NotFoundError marks a 404: the name or ID does not resolve to a card.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
