package deck

import "testing"

func TestAddCard(t *testing.T) {
	d := New()
	bolt := Card{ID: "bolt", Name: "Lightning Bolt"}

	d = AddCard(d, bolt, 1)
	if len(d.Cards) != 1 || d.Cards[0].Quantity != 1 {
		t.Fatalf("unexpected cards after add: %+v", d.Cards)
	}

	// Same ID merges into the existing entry.
	d = AddCard(d, bolt, 2)
	if len(d.Cards) != 1 || d.Cards[0].Quantity != 3 {
		t.Errorf("duplicate add should merge quantities: %+v", d.Cards)
	}

	// Quantities below 1 are clamped.
	d = AddCard(d, Card{ID: "x"}, 0)
	if d.Cards[1].Quantity != 1 {
		t.Errorf("zero quantity should clamp to 1: %+v", d.Cards[1])
	}

	// Cards without an ID are ignored.
	before := len(d.Cards)
	d = AddCard(d, Card{}, 1)
	if len(d.Cards) != before {
		t.Error("card without ID should not be added")
	}
}

func TestAddCardRefusesCommander(t *testing.T) {
	d := New()
	cmd := Card{ID: "cmd", Name: "Atraxa"}
	d = SetCommander(d, &cmd)
	d = AddCard(d, cmd, 1)
	if len(d.Cards) != 0 {
		t.Errorf("commander must not enter the mainboard: %+v", d.Cards)
	}
}

func TestSetCommanderDeduplicatesMainboard(t *testing.T) {
	d := New()
	card := Card{ID: "cmd", Name: "Atraxa"}
	d = AddCard(d, card, 1)
	d = AddCard(d, Card{ID: "other"}, 1)

	d = SetCommander(d, &card)
	if len(d.Cards) != 1 || d.Cards[0].ID != "other" {
		t.Errorf("promoting a mainboard card to commander must remove it: %+v", d.Cards)
	}
}

func TestRemoveCardPrunesOverride(t *testing.T) {
	d := New()
	card := Card{ID: "a", TypeLine: "Instant"}
	d = AddCard(d, card, 1)
	d = SetCategoryOverride(d, card, CategoryOther)

	d = RemoveCard(d, "a")
	if len(d.Cards) != 0 {
		t.Errorf("card not removed: %+v", d.Cards)
	}
	if _, ok := d.CardCategories["a"]; ok {
		t.Error("override should be pruned on removal")
	}
}

func TestSetQuantity(t *testing.T) {
	d := New()
	d = AddCard(d, Card{ID: "a"}, 1)

	d = SetQuantity(d, "a", 4)
	if d.Cards[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", d.Cards[0].Quantity)
	}

	d = SetQuantity(d, "a", 0)
	if len(d.Cards) != 0 {
		t.Error("quantity below 1 should remove the entry")
	}
}

func TestReplaceMainboardIsValueSemantics(t *testing.T) {
	d := New()
	d = AddCard(d, Card{ID: "old", TypeLine: "Instant"}, 1)
	d = SetCategoryOverride(d, Card{ID: "old", TypeLine: "Instant"}, CategoryOther)

	replaced := ReplaceMainboard(d, []CardEntry{{Card: Card{ID: "new"}, Quantity: 1}})

	if len(d.Cards) != 1 || d.Cards[0].ID != "old" {
		t.Errorf("original deck mutated: %+v", d.Cards)
	}
	if len(replaced.Cards) != 1 || replaced.Cards[0].ID != "new" {
		t.Errorf("replacement not applied: %+v", replaced.Cards)
	}
	if _, ok := replaced.CardCategories["old"]; ok {
		t.Error("override for replaced card should be pruned")
	}
}

func TestReset(t *testing.T) {
	d := New()
	d = AddCard(d, Card{ID: "a"}, 1)
	d = SetCommander(d, &Card{ID: "cmd"})

	d = Reset(d)
	if d.Commander != nil || len(d.Cards) != 0 || d.Name != DefaultName {
		t.Errorf("reset deck not empty: %+v", d)
	}
}
