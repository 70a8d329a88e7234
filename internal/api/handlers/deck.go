// Package handlers contains the HTTP handlers for the REST API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mastanley13/MTGDeck-sub000/internal/api/response"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/deckio"
	"github.com/mastanley13/MTGDeck-sub000/internal/storage"
)

// defaultUserID is used when a request does not name a user.
const defaultUserID = "local"

// DeckStore persists deck records.
type DeckStore interface {
	Save(ctx context.Context, userID, id string, d deck.Deck) (*storage.DeckRecord, error)
	Get(ctx context.Context, id string) (*storage.DeckRecord, error)
	ListForUser(ctx context.Context, userID string) ([]*storage.DeckRecord, error)
	Delete(ctx context.Context, id string) error
}

// CardResolver resolves card IDs from stored deck payloads.
type CardResolver interface {
	ResolveByID(ctx context.Context, id string) (deck.Card, error)
}

// DeckHandler handles deck persistence API requests.
type DeckHandler struct {
	store    DeckStore
	resolver CardResolver
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(store DeckStore, resolver CardResolver) *DeckHandler {
	return &DeckHandler{store: store, resolver: resolver}
}

func userID(r *http.Request) string {
	if id := r.URL.Query().Get("user_id"); id != "" {
		return id
	}
	return defaultUserID
}

// GetDecks returns all deck records for a user, newest first.
func (h *DeckHandler) GetDecks(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListForUser(r.Context(), userID(r))
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, records)
}

// SaveDeckRequest represents a request to save a deck.
type SaveDeckRequest struct {
	Deck deck.Deck `json:"deck"`
}

// CreateDeck saves a new deck and returns the stored record.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	var req SaveDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	record, err := h.store.Save(r.Context(), userID(r), "", req.Deck)
	if err != nil {
		if errors.Is(err, storage.ErrPayloadTooLarge) {
			response.PayloadTooLarge(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Created(w, record)
}

// UpdateDeck overwrites an existing deck record.
func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if deckID == "" {
		response.BadRequest(w, errors.New("deck ID is required"))
		return
	}

	var req SaveDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	record, err := h.store.Save(r.Context(), userID(r), deckID, req.Deck)
	if err != nil {
		if errors.Is(err, storage.ErrPayloadTooLarge) {
			response.PayloadTooLarge(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.Success(w, record)
}

// GetDeck returns a stored deck record by ID.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if deckID == "" {
		response.BadRequest(w, errors.New("deck ID is required"))
		return
	}

	record, err := h.store.Get(r.Context(), deckID)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	if record == nil {
		response.NotFound(w, errors.New("deck not found"))
		return
	}
	response.Success(w, record)
}

// GetDeckCards returns a stored deck with full card data resolved.
func (h *DeckHandler) GetDeckCards(w http.ResponseWriter, r *http.Request) {
	d, ok := h.hydrate(w, r)
	if !ok {
		return
	}
	response.Success(w, d)
}

// DeleteDeck deletes a deck record. Deleting an absent deck succeeds.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "deckID")
	if deckID == "" {
		response.BadRequest(w, errors.New("deck ID is required"))
		return
	}

	if err := h.store.Delete(r.Context(), deckID); err != nil {
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

// ExportDeck writes a stored deck as a plain-text deck list.
func (h *DeckHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	d, ok := h.hydrate(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := deckio.Write(w, d); err != nil {
		// Headers are already out; nothing sensible to send.
		return
	}
}

// hydrate loads a record and resolves its card IDs into a full deck.
// On failure it writes the error response and returns false.
func (h *DeckHandler) hydrate(w http.ResponseWriter, r *http.Request) (deck.Deck, bool) {
	deckID := chi.URLParam(r, "deckID")
	if deckID == "" {
		response.BadRequest(w, errors.New("deck ID is required"))
		return deck.Deck{}, false
	}

	record, err := h.store.Get(r.Context(), deckID)
	if err != nil {
		response.InternalError(w, err)
		return deck.Deck{}, false
	}
	if record == nil {
		response.NotFound(w, errors.New("deck not found"))
		return deck.Deck{}, false
	}

	decoded, err := storage.DecodeDeck(record.Payload)
	if err != nil {
		response.InternalError(w, err)
		return deck.Deck{}, false
	}

	d := deck.New()
	d.Name = record.Name
	d.Description = decoded.Description

	if decoded.CommanderID != "" {
		commander, err := h.resolver.ResolveByID(r.Context(), decoded.CommanderID)
		if err != nil {
			response.InternalError(w, err)
			return deck.Deck{}, false
		}
		d = deck.SetCommander(d, &commander)
	}

	for _, entry := range decoded.Entries {
		card, err := h.resolver.ResolveByID(r.Context(), entry.ID)
		if err != nil {
			response.InternalError(w, err)
			return deck.Deck{}, false
		}
		d = deck.AddCard(d, card, entry.Quantity)
		if entry.Category != "" {
			d = deck.SetCategoryOverride(d, card, deck.Category(entry.Category))
		}
	}
	return d, true
}
