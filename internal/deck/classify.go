package deck

import "strings"

// Category is a display/validation grouping derived from a card's type line.
type Category string

const (
	CategoryLands         Category = "Lands"
	CategoryCreatures     Category = "Creatures"
	CategoryArtifacts     Category = "Artifacts"
	CategoryEnchantments  Category = "Enchantments"
	CategoryPlaneswalkers Category = "Planeswalkers"
	CategoryInstants      Category = "Instants"
	CategorySorceries     Category = "Sorceries"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryLands,
	CategoryCreatures,
	CategoryArtifacts,
	CategoryEnchantments,
	CategoryPlaneswalkers,
	CategoryInstants,
	CategorySorceries,
	CategoryOther,
}

// Classify maps a type line to its category. First match wins: land
// beats creature beats artifact/enchantment, so an artifact creature
// land classifies as a land.
func Classify(typeLine string) Category {
	switch {
	case strings.Contains(typeLine, "Land"):
		return CategoryLands
	case strings.Contains(typeLine, "Creature"):
		return CategoryCreatures
	case strings.Contains(typeLine, "Artifact"):
		return CategoryArtifacts
	case strings.Contains(typeLine, "Enchantment"):
		return CategoryEnchantments
	case strings.Contains(typeLine, "Planeswalker"):
		return CategoryPlaneswalkers
	case strings.Contains(typeLine, "Instant"):
		return CategoryInstants
	case strings.Contains(typeLine, "Sorcery"):
		return CategorySorceries
	default:
		return CategoryOther
	}
}

// ClassifyCard resolves a card's category for the given deck. A deck-level
// override wins, then the card's own custom category, then the type line.
func ClassifyCard(d Deck, c Card) Category {
	if override, ok := d.CardCategories[c.ID]; ok && override != "" {
		return Category(override)
	}
	if c.CustomCategory != "" {
		return Category(c.CustomCategory)
	}
	return Classify(c.TypeLine)
}

// SetCategoryOverride records a per-deck category override for a card.
// Setting the override to the card's derived default clears it instead,
// so a no-op assignment leaves no stored override behind.
func SetCategoryOverride(d Deck, c Card, category Category) Deck {
	out := d.clone()
	if category == "" || category == Classify(c.TypeLine) {
		delete(out.CardCategories, c.ID)
	} else {
		out.CardCategories[c.ID] = string(category)
	}
	out.touch()
	return out
}

// GroupByCategory buckets the deck's mainboard entries by resolved
// category.
func GroupByCategory(d Deck) map[Category][]CardEntry {
	groups := make(map[Category][]CardEntry)
	for _, entry := range d.Cards {
		cat := ClassifyCard(d, entry.Card)
		groups[cat] = append(groups[cat], entry)
	}
	return groups
}

// IsBasicLand reports whether a type line names a basic land, which is
// exempt from the singleton rule.
func IsBasicLand(typeLine string) bool {
	return strings.Contains(typeLine, "Basic") && strings.Contains(typeLine, "Land")
}
