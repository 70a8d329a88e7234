package deck

import "testing"

func entries(quantities ...int) []CardEntry {
	out := make([]CardEntry, len(quantities))
	for i, qty := range quantities {
		out[i] = CardEntry{Card: Card{ID: string(rune('a' + i))}, Quantity: qty}
	}
	return out
}

func TestMainDeckCount(t *testing.T) {
	tests := []struct {
		name  string
		cards []CardEntry
		want  int
	}{
		{"Empty list", nil, 0},
		{"Single copies", entries(1, 1, 1), 3},
		{"Mixed quantities", entries(1, 4, 2), 7},
		{"Missing quantity counts as one", entries(0, 0, 3), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MainDeckCount(tt.cards); got != tt.want {
				t.Errorf("MainDeckCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Count identity: total == main + (commander present ? 1 : 0).
func TestTotalCountIdentity(t *testing.T) {
	commander := &Card{ID: "cmd"}
	for _, cards := range [][]CardEntry{nil, entries(1), entries(3, 2, 1)} {
		main := MainDeckCount(cards)
		if got := TotalCount(cards, nil); got != main {
			t.Errorf("TotalCount without commander = %d, want %d", got, main)
		}
		if got := TotalCount(cards, commander); got != main+1 {
			t.Errorf("TotalCount with commander = %d, want %d", got, main+1)
		}
	}
}

func TestCompletion(t *testing.T) {
	commander := &Card{ID: "cmd"}

	t.Run("Empty deck", func(t *testing.T) {
		info := Completion(nil, nil)
		if info.IsComplete || info.HasCommander || info.IsMainDeckFull {
			t.Errorf("empty deck flagged complete: %+v", info)
		}
		if info.RemainingMainSlots != 99 || info.RemainingTotal != 100 {
			t.Errorf("remaining slots = %d/%d, want 99/100",
				info.RemainingMainSlots, info.RemainingTotal)
		}
	})

	t.Run("Complete deck", func(t *testing.T) {
		cards := make([]CardEntry, 99)
		for i := range cards {
			cards[i] = CardEntry{Card: Card{ID: "x"}, Quantity: 1}
		}
		info := Completion(cards, commander)
		if !info.IsComplete || !info.IsMainDeckFull || info.TotalCount != 100 {
			t.Errorf("complete deck not recognized: %+v", info)
		}
		if info.RemainingMainSlots != 0 || info.RemainingTotal != 0 {
			t.Errorf("remaining slots should be zero: %+v", info)
		}
	})

	t.Run("Overfull main deck clamps remaining to zero", func(t *testing.T) {
		cards := entries(60, 60)
		info := Completion(cards, nil)
		if !info.IsMainDeckFull {
			t.Error("120 cards should report main deck full")
		}
		if info.RemainingMainSlots != 0 || info.RemainingTotal != 0 {
			t.Errorf("remaining slots must not go negative: %+v", info)
		}
	})

	t.Run("99 cards without commander is incomplete", func(t *testing.T) {
		cards := entries(99)
		info := Completion(cards, nil)
		if info.IsComplete {
			t.Error("deck without commander cannot be complete")
		}
		if !info.IsMainDeckFull {
			t.Error("99 mainboard cards should report full")
		}
		if info.RemainingTotal != 1 {
			t.Errorf("remaining total = %d, want 1", info.RemainingTotal)
		}
	})
}
