// Package validator implements the Commander deck legality battery:
// card count, color identity, the singleton rule, and format legality.
// Rule violations are never errors; every check returns a structured,
// explainable result so the caller can render a full report.
package validator

import (
	"fmt"
	"strings"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// Check names, in the fixed order Validate reports them.
const (
	CheckCardCount      = "Card Count"
	CheckColorIdentity  = "Color Identity"
	CheckSingleton      = "Singleton Rule"
	CheckFormatLegality = "Format Legality"
)

// Violation ties a specific rule failure to a specific card.
type Violation struct {
	Card   deck.Card `json:"card"`
	Reason string    `json:"reason"`
}

// CheckResult is the verdict for one named check.
type CheckResult struct {
	Name       string      `json:"name"`
	Valid      bool        `json:"valid"`
	Message    string      `json:"message"`
	Violations []Violation `json:"violations,omitempty"`
}

// Validate runs the full battery against a commander and mainboard.
// It always returns exactly four results in fixed order and never
// short-circuits, so the report is complete even when an early check
// already failed.
func Validate(commander *deck.Card, cards []deck.CardEntry) []CheckResult {
	return []CheckResult{
		checkCardCount(commander, cards),
		checkColorIdentity(commander, cards),
		checkSingleton(cards),
		checkFormatLegality(commander, cards),
	}
}

// IsValid reports whether every check in the battery passes.
func IsValid(commander *deck.Card, cards []deck.CardEntry) bool {
	for _, result := range Validate(commander, cards) {
		if !result.Valid {
			return false
		}
	}
	return true
}

// checkCardCount verifies the 99+1 card requirement. When the commander
// is still merged into the mainboard (repair skipped or bypassed) the
// count includes it, so the target becomes 100 instead of 99.
func checkCardCount(commander *deck.Card, cards []deck.CardEntry) CheckResult {
	result := CheckResult{Name: CheckCardCount}

	if commander == nil {
		result.Message = "A commander is required. Choose a legendary creature to lead the deck."
		return result
	}

	count := deck.MainDeckCount(cards)
	target := deck.MainDeckTarget
	merged := false
	for _, entry := range cards {
		if entry.ID == commander.ID || (entry.Name != "" && entry.Name == commander.Name) {
			merged = true
			break
		}
	}
	if merged {
		target = deck.TotalTarget
	}

	if count != target {
		result.Message = fmt.Sprintf(
			"Deck contains %d cards, but must contain exactly %d (99 plus your commander).",
			count, target)
		return result
	}

	result.Valid = true
	if merged {
		result.Message = "Deck contains exactly 100 cards including your commander."
	} else {
		result.Message = "Deck contains exactly 99 cards plus your commander."
	}
	return result
}

// checkColorIdentity verifies every mainboard card fits inside the
// commander's color envelope. Colorless cards always comply.
func checkColorIdentity(commander *deck.Card, cards []deck.CardEntry) CheckResult {
	result := CheckResult{Name: CheckColorIdentity}

	if commander == nil {
		result.Message = "Color identity cannot be checked without a commander."
		return result
	}

	envelope := strings.Join(commander.ColorIdentity, "")
	if envelope == "" {
		envelope = "colorless"
	}
	for _, entry := range cards {
		if entry.HasColorIdentityWithin(commander.ColorIdentity) {
			continue
		}
		result.Violations = append(result.Violations, Violation{
			Card: entry.Card,
			Reason: fmt.Sprintf("Color identity (%s) not allowed in %s's color identity (%s)",
				strings.Join(entry.ColorIdentity, ""), commander.Name, envelope),
		})
	}

	if len(result.Violations) > 0 {
		result.Message = fmt.Sprintf("%d card(s) fall outside %s's color identity.",
			len(result.Violations), commander.Name)
		return result
	}

	result.Valid = true
	result.Message = fmt.Sprintf("All cards fit within %s's color identity.", commander.Name)
	return result
}

// checkSingleton enforces one copy per unique name, with basic lands
// exempt. Quantities are accumulated across entries (two printings of
// the same name count together), and only the entry that pushes a
// name's running total above 1 is reported: one violation per name,
// recorded at the crossing point with the cumulative count at that
// moment.
func checkSingleton(cards []deck.CardEntry) CheckResult {
	result := CheckResult{Name: CheckSingleton}

	totals := make(map[string]int)
	flagged := make(map[string]bool)
	for _, entry := range cards {
		if entry.Name == "" || deck.IsBasicLand(entry.TypeLine) {
			continue
		}
		qty := entry.Quantity
		if qty < 1 {
			qty = 1
		}
		totals[entry.Name] += qty
		if totals[entry.Name] > 1 && !flagged[entry.Name] {
			flagged[entry.Name] = true
			result.Violations = append(result.Violations, Violation{
				Card: entry.Card,
				Reason: fmt.Sprintf("%s appears %d times; only one copy of a non-basic card is allowed.",
					entry.Name, totals[entry.Name]),
			})
		}
	}

	if len(result.Violations) > 0 {
		result.Message = fmt.Sprintf("%d card name(s) exceed the one-copy limit.", len(result.Violations))
		return result
	}

	result.Valid = true
	result.Message = "No duplicate non-basic cards."
	return result
}

// checkFormatLegality requires an explicit "legal" Commander legality on
// the commander and every mainboard card. An absent legalities map is
// treated as unverifiable and does not block the deck.
func checkFormatLegality(commander *deck.Card, cards []deck.CardEntry) CheckResult {
	result := CheckResult{Name: CheckFormatLegality}

	if commander != nil {
		if legality := commander.CommanderLegality(); legality != "" && legality != "legal" {
			result.Violations = append(result.Violations, Violation{
				Card:   *commander,
				Reason: fmt.Sprintf("%s is not legal as a commander.", commander.Name),
			})
		}
	}
	for _, entry := range cards {
		if legality := entry.CommanderLegality(); legality != "" && legality != "legal" {
			result.Violations = append(result.Violations, Violation{
				Card:   entry.Card,
				Reason: fmt.Sprintf("%s is not legal in Commander format.", entry.Name),
			})
		}
	}

	if len(result.Violations) > 0 {
		result.Message = fmt.Sprintf("%d card(s) are not legal in Commander.", len(result.Violations))
		return result
	}

	result.Valid = true
	result.Message = "All cards are legal in Commander."
	return result
}
