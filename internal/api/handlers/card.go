package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mastanley13/MTGDeck-sub000/internal/api/response"
	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/scryfall"
)

// CardLookup resolves cards through the cache-backed lookup service.
type CardLookup interface {
	ResolveByID(ctx context.Context, id string) (deck.Card, error)
	ResolveByName(ctx context.Context, name string) (deck.Card, error)
}

// CardSearcher runs full-text card searches upstream.
type CardSearcher interface {
	SearchCards(ctx context.Context, query string) (*scryfall.SearchResult, error)
}

// CardHandler handles card lookup and search API requests.
type CardHandler struct {
	lookup   CardLookup
	searcher CardSearcher
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(lookup CardLookup, searcher CardSearcher) *CardHandler {
	return &CardHandler{lookup: lookup, searcher: searcher}
}

// SearchCards searches for cards matching the q query parameter.
func (h *CardHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.BadRequest(w, errors.New("query parameter q is required"))
		return
	}

	result, err := h.searcher.SearchCards(r.Context(), query)
	if err != nil {
		if scryfall.IsNotFound(err) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Success(w, result)
}

// GetCard returns a single card by ID.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	card, err := h.lookup.ResolveByID(r.Context(), cardID)
	if err != nil {
		if errors.Is(err, cardlookup.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Success(w, card)
}

// GetCardByName returns a single card by (fuzzy) name.
func (h *CardHandler) GetCardByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		response.BadRequest(w, errors.New("card name is required"))
		return
	}

	card, err := h.lookup.ResolveByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, cardlookup.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Success(w, card)
}
