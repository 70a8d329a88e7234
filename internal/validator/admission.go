package validator

import (
	"fmt"
	"strings"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// AdmissionResult is the verdict of the single-card pre-insertion gate.
type AdmissionResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// CanAdmit is the fast-path check run before inserting one card into an
// existing deck: color identity and Commander legality only. It stays
// O(1) on purpose; capacity and name uniqueness are deck-level concerns
// the caller checks separately (IsMainDeckFull, mainboard name scan).
func CanAdmit(card, commander *deck.Card) AdmissionResult {
	if commander == nil {
		return AdmissionResult{Message: "No commander selected."}
	}
	if card == nil {
		return AdmissionResult{Message: "No card provided."}
	}

	if !card.HasColorIdentityWithin(commander.ColorIdentity) {
		envelope := strings.Join(commander.ColorIdentity, "")
		if envelope == "" {
			envelope = "colorless"
		}
		return AdmissionResult{
			Message: fmt.Sprintf("Color identity (%s) not allowed in %s's color identity (%s)",
				strings.Join(card.ColorIdentity, ""), commander.Name, envelope),
		}
	}

	if legality := card.CommanderLegality(); legality != "" && legality != "legal" {
		return AdmissionResult{
			Message: fmt.Sprintf("%s is not legal in Commander format.", card.Name),
		}
	}

	return AdmissionResult{
		Valid:   true,
		Message: fmt.Sprintf("%s is valid for this commander deck.", card.Name),
	}
}
