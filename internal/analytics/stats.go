// Package analytics computes deck composition statistics and renders
// them as interactive HTML charts.
package analytics

import (
	"sort"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// colorNames maps identity letters to display names.
var colorNames = map[string]string{
	"W": "White",
	"U": "Blue",
	"B": "Black",
	"R": "Red",
	"G": "Green",
	"C": "Colorless",
}

// colorOrder is the canonical WUBRG display order.
var colorOrder = []string{"W", "U", "B", "R", "G", "C"}

// CurvePoint is one mana-value bucket of the curve.
type CurvePoint struct {
	Label string
	Count int
}

// CategoryCounts sums card quantities per category, honoring the
// deck's category overrides.
func CategoryCounts(d deck.Deck) map[deck.Category]int {
	counts := make(map[deck.Category]int)
	for _, entry := range d.Cards {
		qty := entry.Quantity
		if qty < 1 {
			qty = 1
		}
		counts[deck.ClassifyCard(d, entry.Card)] += qty
	}
	return counts
}

// ColorCounts sums card quantities per color identity letter. A card
// with a multicolor identity counts once per color; cards with no
// identity count as colorless.
func ColorCounts(cards []deck.CardEntry) map[string]int {
	counts := make(map[string]int)
	for _, entry := range cards {
		qty := entry.Quantity
		if qty < 1 {
			qty = 1
		}
		if len(entry.ColorIdentity) == 0 {
			counts["C"] += qty
			continue
		}
		for _, color := range entry.ColorIdentity {
			counts[color] += qty
		}
	}
	return counts
}

// ManaCurve buckets nonland cards by mana value, 0 through 7+.
func ManaCurve(cards []deck.CardEntry) []CurvePoint {
	labels := []string{"0", "1", "2", "3", "4", "5", "6", "7+"}
	buckets := make([]int, len(labels))

	for _, entry := range cards {
		if deck.Classify(entry.TypeLine) == deck.CategoryLands {
			continue
		}
		qty := entry.Quantity
		if qty < 1 {
			qty = 1
		}
		bucket := int(entry.CMC)
		if bucket < 0 {
			bucket = 0
		}
		if bucket > 7 {
			bucket = 7
		}
		buckets[bucket] += qty
	}

	curve := make([]CurvePoint, len(labels))
	for i, label := range labels {
		curve[i] = CurvePoint{Label: label, Count: buckets[i]}
	}
	return curve
}

// AverageManaValue computes the mean mana value of nonland cards.
// Returns 0 for a deck with no nonland cards.
func AverageManaValue(cards []deck.CardEntry) float64 {
	var total float64
	var count int
	for _, entry := range cards {
		if deck.Classify(entry.TypeLine) == deck.CategoryLands {
			continue
		}
		qty := entry.Quantity
		if qty < 1 {
			qty = 1
		}
		total += entry.CMC * float64(qty)
		count += qty
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// sortedCategories returns the categories present in counts, in the
// classifier's canonical order.
func sortedCategories(counts map[deck.Category]int) []deck.Category {
	var present []deck.Category
	for _, category := range deck.Categories {
		if counts[category] > 0 {
			present = append(present, category)
		}
	}
	return present
}

// sortedColors returns the colors present in counts in WUBRG order,
// then any unexpected letters alphabetically.
func sortedColors(counts map[string]int) []string {
	var present []string
	seen := make(map[string]bool)
	for _, color := range colorOrder {
		if counts[color] > 0 {
			present = append(present, color)
			seen[color] = true
		}
	}
	var extra []string
	for color := range counts {
		if !seen[color] && counts[color] > 0 {
			extra = append(extra, color)
		}
	}
	sort.Strings(extra)
	return append(present, extra...)
}
