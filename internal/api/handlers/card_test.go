package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/scryfall"
)

// mockLookup resolves from a fixed card set, ErrNotFound otherwise.
type mockLookup struct {
	cards map[string]deck.Card
}

func (m *mockLookup) ResolveByID(_ context.Context, id string) (deck.Card, error) {
	card, ok := m.cards[id]
	if !ok {
		return deck.Card{}, fmt.Errorf("%q: %w", id, cardlookup.ErrNotFound)
	}
	return card, nil
}

func (m *mockLookup) ResolveByName(_ context.Context, name string) (deck.Card, error) {
	for _, card := range m.cards {
		if card.Name == name {
			return card, nil
		}
	}
	return deck.Card{}, fmt.Errorf("%q: %w", name, cardlookup.ErrNotFound)
}

type mockSearcher struct {
	result *scryfall.SearchResult
	err    error
}

func (m *mockSearcher) SearchCards(_ context.Context, _ string) (*scryfall.SearchResult, error) {
	return m.result, m.err
}

func cardRouter(lookup CardLookup, searcher CardSearcher) *chi.Mux {
	h := NewCardHandler(lookup, searcher)
	r := chi.NewRouter()
	r.Get("/cards", h.SearchCards)
	r.Get("/cards/{cardID}", h.GetCard)
	r.Get("/cards/name/{name}", h.GetCardByName)
	return r
}

func TestGetCardByID(t *testing.T) {
	lookup := &mockLookup{cards: map[string]deck.Card{
		"sol": {ID: "sol", Name: "Sol Ring", TypeLine: "Artifact"},
	}}
	router := cardRouter(lookup, &mockSearcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards/sol", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sol Ring")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCardByName(t *testing.T) {
	lookup := &mockLookup{cards: map[string]deck.Card{
		"sol": {ID: "sol", Name: "Sol Ring", TypeLine: "Artifact"},
	}}
	router := cardRouter(lookup, &mockSearcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards/name/Sol%20Ring", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"sol"`)
}

func TestSearchCardsRequiresQuery(t *testing.T) {
	router := cardRouter(&mockLookup{}, &mockSearcher{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchCardsReturnsResults(t *testing.T) {
	searcher := &mockSearcher{result: &scryfall.SearchResult{
		TotalCards: 1,
		Data:       []scryfall.Card{{ID: "sol", Name: "Sol Ring"}},
	}}
	router := cardRouter(&mockLookup{}, searcher)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cards?q=ring", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sol Ring")
}
