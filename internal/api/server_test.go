package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastanley13/MTGDeck-sub000/internal/assembly"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/scryfall"
	"github.com/mastanley13/MTGDeck-sub000/internal/storage"
)

type stubStore struct{}

func (stubStore) Save(context.Context, string, string, deck.Deck) (*storage.DeckRecord, error) {
	return &storage.DeckRecord{ID: "stub"}, nil
}
func (stubStore) Get(context.Context, string) (*storage.DeckRecord, error)         { return nil, nil }
func (stubStore) ListForUser(context.Context, string) ([]*storage.DeckRecord, error) { return nil, nil }
func (stubStore) Delete(context.Context, string) error                             { return nil }

type stubLookup struct{}

func (stubLookup) ResolveByID(context.Context, string) (deck.Card, error) {
	return deck.Card{ID: "stub"}, nil
}
func (stubLookup) ResolveByName(context.Context, string) (deck.Card, error) {
	return deck.Card{ID: "stub"}, nil
}

type stubSearcher struct{}

func (stubSearcher) SearchCards(context.Context, string) (*scryfall.SearchResult, error) {
	return &scryfall.SearchResult{}, nil
}

type stubAssembler struct{}

func (stubAssembler) Assemble(context.Context, assembly.Request) (assembly.Result, error) {
	return assembly.Result{}, nil
}
func (stubAssembler) CurrentStage() assembly.Stage { return assembly.StageIdle }

func testServer() *Server {
	return NewServer(nil, &Services{
		DeckStore: stubStore{},
		Lookup:    stubLookup{},
		Searcher:  stubSearcher{},
		Assembler: stubAssembler{},
	}, nil)
}

func TestHealthCheck(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestDefaultConfigAddr(t *testing.T) {
	s := testServer()
	assert.Equal(t, "127.0.0.1:8787", s.Addr())
}

func TestContentTypeEnforcement(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validator/check", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/validator/check", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssemblyStageRoute(t *testing.T) {
	s := testServer()

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/assembly/stage", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(assembly.StageIdle))
}

func TestShutdownBeforeStart(t *testing.T) {
	s := testServer()
	assert.NoError(t, s.Shutdown(context.Background()))
}
