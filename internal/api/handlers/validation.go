package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mastanley13/MTGDeck-sub000/internal/api/response"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/validator"
)

// ValidationHandler handles deck validation API requests. It holds no
// state; every request carries the full deck to check.
type ValidationHandler struct{}

// NewValidationHandler creates a new ValidationHandler.
func NewValidationHandler() *ValidationHandler {
	return &ValidationHandler{}
}

// ValidateRequest represents a request to validate a deck.
type ValidateRequest struct {
	Commander *deck.Card       `json:"commander"`
	Cards     []deck.CardEntry `json:"cards"`
}

// ValidateResponse is the full validation report for a deck.
type ValidateResponse struct {
	Valid  bool                    `json:"valid"`
	Checks []validator.CheckResult `json:"checks"`
}

// Validate runs the full check battery against the posted deck.
func (h *ValidationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	checks := validator.Validate(req.Commander, req.Cards)
	response.Success(w, ValidateResponse{
		Valid:  validator.IsValid(req.Commander, req.Cards),
		Checks: checks,
	})
}

// Repair coerces an arbitrary JSON document into a well-formed deck.
func (h *ValidationHandler) Repair(w http.ResponseWriter, r *http.Request) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	repaired, err := deck.Repair(raw)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	response.Success(w, repaired)
}

// AdmitRequest asks whether a single card may join a commander deck.
type AdmitRequest struct {
	Card      *deck.Card `json:"card"`
	Commander *deck.Card `json:"commander"`
}

// Admit checks a single card against the commander's constraints.
func (h *ValidationHandler) Admit(w http.ResponseWriter, r *http.Request) {
	var req AdmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	response.Success(w, validator.CanAdmit(req.Card, req.Commander))
}
