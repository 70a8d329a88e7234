package assembly

import (
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
)

// staticBasicIDPrefix marks placeholder basic lands built locally so
// the hydration stage can find and replace them with real card data.
const staticBasicIDPrefix = "static-basic-"

// basicLandNames maps each color to its basic land.
var basicLandNames = map[string]string{
	"W": "Plains",
	"U": "Island",
	"B": "Swamp",
	"R": "Mountain",
	"G": "Forest",
}

// staticBasic builds a placeholder basic land. Basic lands have an
// empty color identity and are exempt from the singleton rule, so
// these can be added in any number without risking new violations.
func staticBasic(name string) deck.Card {
	return deck.Card{
		ID:            staticBasicIDPrefix + name,
		Name:          name,
		TypeLine:      "Basic Land — " + name,
		ColorIdentity: []string{},
		Legalities:    map[string]string{"commander": "legal"},
	}
}

// basicsForIdentity returns the basic land names for a commander's
// color identity. Colorless commanders get Wastes.
func basicsForIdentity(colorIdentity []string) []string {
	var names []string
	for _, color := range colorIdentity {
		if name, ok := basicLandNames[color]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		names = []string{"Wastes"}
	}
	return names
}

// topUpWithBasics adds basic lands, cycling through the commander's
// colors, until the mainboard reaches the target. Returns the deck and
// the number of lands added.
func topUpWithBasics(working deck.Deck, colorIdentity []string) (deck.Deck, int) {
	names := basicsForIdentity(colorIdentity)

	added := 0
	for i := 0; deck.MainDeckCount(working.Cards) < deck.MainDeckTarget; i++ {
		working = deck.AddCard(working, staticBasic(names[i%len(names)]), 1)
		added++
	}
	return working, added
}
