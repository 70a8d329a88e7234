package deck

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		typeLine string
		want     Category
	}{
		{"Plain land", "Land — Island", CategoryLands},
		{"Basic land", "Basic Land — Plains", CategoryLands},
		{"Artifact land beats artifact", "Artifact Land", CategoryLands},
		{"Creature land beats creature", "Land Creature — Forest Dryad", CategoryLands},
		{"Plain creature", "Creature — Human Wizard", CategoryCreatures},
		{"Legendary creature", "Legendary Creature — Phyrexian Angel", CategoryCreatures},
		{"Artifact creature beats artifact", "Artifact Creature — Golem", CategoryCreatures},
		{"Enchantment creature beats enchantment", "Enchantment Creature — God", CategoryCreatures},
		{"Plain artifact", "Artifact — Equipment", CategoryArtifacts},
		{"Artifact enchantment orders artifact first", "Artifact Enchantment", CategoryArtifacts},
		{"Enchantment", "Enchantment — Aura", CategoryEnchantments},
		{"Planeswalker", "Legendary Planeswalker — Jace", CategoryPlaneswalkers},
		{"Instant", "Instant", CategoryInstants},
		{"Sorcery", "Sorcery", CategorySorceries},
		{"Battle falls through", "Battle — Siege", CategoryOther},
		{"Empty type line", "", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.typeLine); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.typeLine, got, tt.want)
			}
		})
	}
}

func TestClassifyCardOverrides(t *testing.T) {
	card := Card{ID: "c1", TypeLine: "Creature — Elf"}

	d := New()
	if got := ClassifyCard(d, card); got != CategoryCreatures {
		t.Fatalf("derived category = %q, want Creatures", got)
	}

	d.CardCategories["c1"] = string(CategoryLands)
	if got := ClassifyCard(d, card); got != CategoryLands {
		t.Errorf("deck override ignored: got %q", got)
	}

	delete(d.CardCategories, "c1")
	card.CustomCategory = string(CategoryOther)
	if got := ClassifyCard(d, card); got != CategoryOther {
		t.Errorf("card custom category ignored: got %q", got)
	}

	// Deck-level override beats the card's own custom category.
	d.CardCategories["c1"] = string(CategoryArtifacts)
	if got := ClassifyCard(d, card); got != CategoryArtifacts {
		t.Errorf("deck override should beat custom category: got %q", got)
	}
}

func TestSetCategoryOverrideClearsOnDefault(t *testing.T) {
	card := Card{ID: "c1", TypeLine: "Instant"}
	d := New()

	d = SetCategoryOverride(d, card, CategoryOther)
	if d.CardCategories["c1"] != string(CategoryOther) {
		t.Fatalf("override not stored: %v", d.CardCategories)
	}

	// Assigning the derived default is treated as clearing the override.
	d = SetCategoryOverride(d, card, CategoryInstants)
	if _, ok := d.CardCategories["c1"]; ok {
		t.Errorf("override to derived default should clear, got %v", d.CardCategories)
	}
}

func TestGroupByCategory(t *testing.T) {
	d := New()
	d.Cards = []CardEntry{
		{Card: Card{ID: "a", TypeLine: "Creature — Bear"}, Quantity: 1},
		{Card: Card{ID: "b", TypeLine: "Basic Land — Forest"}, Quantity: 10},
		{Card: Card{ID: "c", TypeLine: "Instant"}, Quantity: 1},
		{Card: Card{ID: "d", TypeLine: "Creature — Wolf"}, Quantity: 1},
	}

	groups := GroupByCategory(d)
	if len(groups[CategoryCreatures]) != 2 {
		t.Errorf("creatures = %d, want 2", len(groups[CategoryCreatures]))
	}
	if len(groups[CategoryLands]) != 1 {
		t.Errorf("lands = %d, want 1", len(groups[CategoryLands]))
	}
	if len(groups[CategoryInstants]) != 1 {
		t.Errorf("instants = %d, want 1", len(groups[CategoryInstants]))
	}
}

func TestIsBasicLand(t *testing.T) {
	if !IsBasicLand("Basic Land — Plains") {
		t.Error("Basic Land — Plains should be basic")
	}
	if !IsBasicLand("Basic Snow Land — Island") {
		t.Error("snow basics are still basic")
	}
	if IsBasicLand("Land — Gate") {
		t.Error("non-basic land misclassified as basic")
	}
	if IsBasicLand("Creature — Basilisk") {
		t.Error("creature misclassified as basic land")
	}
}
