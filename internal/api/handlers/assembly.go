package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mastanley13/MTGDeck-sub000/internal/api/response"
	"github.com/mastanley13/MTGDeck-sub000/internal/assembly"
	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/validator"
)

// Assembler builds complete decks around a commander.
type Assembler interface {
	Assemble(ctx context.Context, req assembly.Request) (assembly.Result, error)
	CurrentStage() assembly.Stage
}

// AssemblyHandler handles AI deck assembly API requests.
type AssemblyHandler struct {
	assembler Assembler
	lookup    CardLookup
}

// NewAssemblyHandler creates a new AssemblyHandler.
func NewAssemblyHandler(assembler Assembler, lookup CardLookup) *AssemblyHandler {
	return &AssemblyHandler{assembler: assembler, lookup: lookup}
}

// AssembleRequest represents a request to assemble a deck.
type AssembleRequest struct {
	CommanderName string `json:"commander_name"`
	DeckName      string `json:"deck_name"`
	Theme         string `json:"theme"`
}

// AssembleResponse carries the assembled deck and its final report.
type AssembleResponse struct {
	Deck         deck.Deck               `json:"deck"`
	Checks       []validator.CheckResult `json:"checks"`
	Replacements int                     `json:"replacements"`
	BasicFills   int                     `json:"basic_fills"`
}

// Assemble builds a full deck for the named commander. The request
// blocks until assembly completes or fails.
func (h *AssemblyHandler) Assemble(w http.ResponseWriter, r *http.Request) {
	var req AssembleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.CommanderName == "" {
		response.BadRequest(w, errors.New("commander name is required"))
		return
	}

	commander, err := h.lookup.ResolveByName(r.Context(), req.CommanderName)
	if err != nil {
		if errors.Is(err, cardlookup.ErrNotFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	result, err := h.assembler.Assemble(r.Context(), assembly.Request{
		Commander: commander,
		DeckName:  req.DeckName,
		Theme:     req.Theme,
	})
	if err != nil {
		response.ServiceUnavailable(w, err)
		return
	}

	response.Success(w, AssembleResponse{
		Deck:         result.Deck,
		Checks:       result.Checks,
		Replacements: result.Replacements,
		BasicFills:   result.BasicFills,
	})
}

// GetStage reports the assembler's current lifecycle stage.
func (h *AssemblyHandler) GetStage(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"stage": string(h.assembler.CurrentStage()),
	})
}
