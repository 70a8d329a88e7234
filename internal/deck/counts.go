package deck

// Commander decks hold exactly 99 mainboard cards plus one commander.
const (
	MainDeckTarget = 99
	TotalTarget    = 100
)

// CompletionInfo summarizes how close a deck is to a complete 100-card
// Commander deck. All fields are derived; nothing is cached.
type CompletionInfo struct {
	MainDeckCount      int  `json:"main_deck_count"`
	TotalCount         int  `json:"total_count"`
	HasCommander       bool `json:"has_commander"`
	IsComplete         bool `json:"is_complete"`
	IsMainDeckFull     bool `json:"is_main_deck_full"`
	RemainingMainSlots int  `json:"remaining_main_slots"`
	RemainingTotal     int  `json:"remaining_total_slots"`
}

// MainDeckCount sums entry quantities over the mainboard. A missing
// quantity counts as a single copy.
func MainDeckCount(cards []CardEntry) int {
	total := 0
	for _, entry := range cards {
		qty := entry.Quantity
		if qty < 1 {
			qty = 1
		}
		total += qty
	}
	return total
}

// TotalCount is the mainboard count plus one for a present commander.
func TotalCount(cards []CardEntry, commander *Card) int {
	total := MainDeckCount(cards)
	if commander != nil {
		total++
	}
	return total
}

// IsComplete reports whether the deck holds exactly 100 cards including
// its commander.
func IsComplete(cards []CardEntry, commander *Card) bool {
	return TotalCount(cards, commander) == TotalTarget
}

// IsMainDeckFull reports whether the mainboard has reached 99 cards.
func IsMainDeckFull(cards []CardEntry) bool {
	return MainDeckCount(cards) >= MainDeckTarget
}

// Completion computes the full completion summary in one pass. Callers
// needing memoization should key on their own change detection; these
// functions recompute every time.
func Completion(cards []CardEntry, commander *Card) CompletionInfo {
	main := MainDeckCount(cards)
	total := main
	if commander != nil {
		total++
	}
	info := CompletionInfo{
		MainDeckCount:  main,
		TotalCount:     total,
		HasCommander:   commander != nil,
		IsComplete:     total == TotalTarget,
		IsMainDeckFull: main >= MainDeckTarget,
	}
	if main < MainDeckTarget {
		info.RemainingMainSlots = MainDeckTarget - main
	}
	if total < TotalTarget {
		info.RemainingTotal = TotalTarget - total
	}
	return info
}
