package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mastanley13/MTGDeck-sub000/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.deckHandler.GetDecks)
			r.Post("/", s.deckHandler.CreateDeck)
			r.Get("/{deckID}", s.deckHandler.GetDeck)
			r.Put("/{deckID}", s.deckHandler.UpdateDeck)
			r.Delete("/{deckID}", s.deckHandler.DeleteDeck)
			r.Get("/{deckID}/cards", s.deckHandler.GetDeckCards)
			r.Get("/{deckID}/export", s.deckHandler.ExportDeck)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", s.cardHandler.SearchCards)
			r.Get("/{cardID}", s.cardHandler.GetCard)
			r.Get("/name/{name}", s.cardHandler.GetCardByName)
		})

		r.Route("/validator", func(r chi.Router) {
			r.Post("/check", s.validationHandler.Validate)
			r.Post("/repair", s.validationHandler.Repair)
			r.Post("/admission", s.validationHandler.Admit)
		})

		r.Route("/assembly", func(r chi.Router) {
			r.Post("/", s.assemblyHandler.Assemble)
			r.Get("/stage", s.assemblyHandler.GetStage)
		})
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "deck-builder-api",
	})
}
