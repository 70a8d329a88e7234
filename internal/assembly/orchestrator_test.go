package assembly

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/events"
	"github.com/mastanley13/MTGDeck-sub000/internal/generator"
	"github.com/mastanley13/MTGDeck-sub000/internal/validator"
)

type fakeGenerator struct {
	skeleton     []generator.NamedEntry
	skeletonErr  error
	replacements []generator.NamedEntry
	replaceCalls int
}

func (g *fakeGenerator) GenerateSkeleton(ctx context.Context, req generator.SkeletonRequest) ([]generator.NamedEntry, error) {
	if g.skeletonErr != nil {
		return nil, g.skeletonErr
	}
	return g.skeleton, nil
}

func (g *fakeGenerator) ProposeReplacement(ctx context.Context, req generator.ReplacementRequest) (generator.NamedEntry, error) {
	if g.replaceCalls >= len(g.replacements) {
		return generator.NamedEntry{}, errors.New("no more suggestions")
	}
	entry := g.replacements[g.replaceCalls]
	g.replaceCalls++
	return entry, nil
}

type fakeResolver struct {
	cards map[string]deck.Card
}

func (r *fakeResolver) ResolveByName(ctx context.Context, name string) (deck.Card, error) {
	card, ok := r.cards[name]
	if !ok {
		return deck.Card{}, cardlookup.ErrNotFound
	}
	return card, nil
}

func (r *fakeResolver) ResolveAll(ctx context.Context, names []string) (cardlookup.BatchResult, error) {
	var result cardlookup.BatchResult
	for _, name := range names {
		card, err := r.ResolveByName(ctx, name)
		if errors.Is(err, cardlookup.ErrNotFound) {
			result.Unresolved = append(result.Unresolved, name)
			continue
		}
		if err != nil {
			return cardlookup.BatchResult{}, err
		}
		result.Resolved = append(result.Resolved, card)
	}
	return result, nil
}

func ephara() deck.Card {
	return deck.Card{
		ID:            "ephara",
		Name:          "Ephara, God of the Polis",
		TypeLine:      "Legendary Enchantment Creature — God",
		ColorIdentity: []string{"W", "U"},
		Legalities:    map[string]string{"commander": "legal"},
	}
}

// skeletonFixture builds n entries plus a resolver that knows them all
// as legal white-blue cards.
func skeletonFixture(n int) ([]generator.NamedEntry, *fakeResolver) {
	entries := make([]generator.NamedEntry, n)
	resolver := &fakeResolver{cards: make(map[string]deck.Card)}
	for i := range entries {
		name := fmt.Sprintf("Fixture Card %03d", i)
		entries[i] = generator.NamedEntry{Name: name, Category: "Creatures"}
		resolver.cards[name] = deck.Card{
			ID:            fmt.Sprintf("fixture-%03d", i),
			Name:          name,
			TypeLine:      "Creature — Soldier",
			ColorIdentity: []string{"W"},
			Legalities:    map[string]string{"commander": "legal"},
		}
	}
	resolver.cards["Plains"] = deck.Card{
		ID: "real-plains", Name: "Plains", TypeLine: "Basic Land — Plains",
		ColorIdentity: []string{}, Legalities: map[string]string{"commander": "legal"},
	}
	resolver.cards["Island"] = deck.Card{
		ID: "real-island", Name: "Island", TypeLine: "Basic Land — Island",
		ColorIdentity: []string{}, Legalities: map[string]string{"commander": "legal"},
	}
	return entries, resolver
}

func allChecksValid(checks []validator.CheckResult) bool {
	for _, check := range checks {
		if !check.Valid {
			return false
		}
	}
	return true
}

func TestAssembleHappyPath(t *testing.T) {
	entries, resolver := skeletonFixture(99)
	gen := &fakeGenerator{skeleton: entries}

	dispatcher := events.NewEventDispatcher(nil)
	var stages []string
	dispatcher.Register(events.NewFuncObserver("stages", func(e events.Event) error {
		stages = append(stages, e.TypedData.(events.AssemblyStageEvent).Stage)
		return nil
	}, events.TypeAssemblyStage))

	orch := NewOrchestrator(gen, resolver, dispatcher, nil)
	result, err := orch.Assemble(context.Background(), Request{Commander: ephara(), Theme: "tokens"})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if got := deck.MainDeckCount(result.Deck.Cards); got != deck.MainDeckTarget {
		t.Errorf("mainboard = %d, want %d", got, deck.MainDeckTarget)
	}
	if !allChecksValid(result.Checks) {
		t.Errorf("final checks failed: %+v", result.Checks)
	}
	if result.Deck.Commander == nil || result.Deck.Commander.ID != "ephara" {
		t.Errorf("commander = %+v", result.Deck.Commander)
	}
	if orch.CurrentStage() != StageComplete {
		t.Errorf("stage = %s, want complete", orch.CurrentStage())
	}

	wantOrder := []string{
		string(StageGenerating), string(StageValidating), string(StageFixingViolations),
		string(StageRevalidating), string(StageHydrating), string(StageComplete),
	}
	if len(stages) != len(wantOrder) {
		t.Fatalf("stages = %v, want %v", stages, wantOrder)
	}
	for i := range wantOrder {
		if stages[i] != wantOrder[i] {
			t.Errorf("stage[%d] = %q, want %q", i, stages[i], wantOrder[i])
		}
	}
}

func TestAssembleUnresolvedNamesFallBackToBasics(t *testing.T) {
	entries, resolver := skeletonFixture(96)
	for i := 0; i < 3; i++ {
		entries = append(entries, generator.NamedEntry{Name: fmt.Sprintf("Hallucinated Card %d", i)})
	}
	gen := &fakeGenerator{skeleton: entries}

	orch := NewOrchestrator(gen, resolver, nil, nil)
	result, err := orch.Assemble(context.Background(), Request{Commander: ephara()})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if got := deck.MainDeckCount(result.Deck.Cards); got != deck.MainDeckTarget {
		t.Errorf("mainboard = %d, want %d", got, deck.MainDeckTarget)
	}
	if result.BasicFills != 3 {
		t.Errorf("basic fills = %d, want 3", result.BasicFills)
	}
	if !allChecksValid(result.Checks) {
		t.Errorf("final checks failed: %+v", result.Checks)
	}

	// The statically filled basics hydrate into real cards.
	for _, entry := range result.Deck.Cards {
		if strings.HasPrefix(entry.ID, staticBasicIDPrefix) {
			t.Errorf("unhydrated basic left in deck: %+v", entry.Card)
		}
	}
}

func TestAssembleReplacesViolatingCards(t *testing.T) {
	entries, resolver := skeletonFixture(98)
	entries = append(entries, generator.NamedEntry{Name: "Dark Ritual"})
	resolver.cards["Dark Ritual"] = deck.Card{
		ID: "dark-ritual", Name: "Dark Ritual", TypeLine: "Instant",
		ColorIdentity: []string{"B"}, Legalities: map[string]string{"commander": "legal"},
	}
	// First suggestion is also off-color; the second sticks.
	resolver.cards["Culling Ritual"] = deck.Card{
		ID: "culling", Name: "Culling Ritual", TypeLine: "Sorcery",
		ColorIdentity: []string{"B", "G"}, Legalities: map[string]string{"commander": "legal"},
	}
	resolver.cards["Supreme Verdict"] = deck.Card{
		ID: "verdict", Name: "Supreme Verdict", TypeLine: "Sorcery",
		ColorIdentity: []string{"W", "U"}, Legalities: map[string]string{"commander": "legal"},
	}
	gen := &fakeGenerator{
		skeleton: entries,
		replacements: []generator.NamedEntry{
			{Name: "Culling Ritual"},
			{Name: "Supreme Verdict"},
		},
	}

	orch := NewOrchestrator(gen, resolver, nil, nil)
	result, err := orch.Assemble(context.Background(), Request{Commander: ephara()})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if result.Replacements != 1 {
		t.Errorf("replacements = %d, want 1", result.Replacements)
	}
	if !allChecksValid(result.Checks) {
		t.Errorf("final checks failed: %+v", result.Checks)
	}
	for _, entry := range result.Deck.Cards {
		if entry.Name == "Dark Ritual" {
			t.Error("violating card still in deck")
		}
	}
	found := false
	for _, entry := range result.Deck.Cards {
		if entry.Name == "Supreme Verdict" {
			found = true
		}
	}
	if !found {
		t.Error("replacement card missing from deck")
	}
}

func TestAssembleTrimsOversizedSkeleton(t *testing.T) {
	entries, resolver := skeletonFixture(105)
	gen := &fakeGenerator{skeleton: entries}

	orch := NewOrchestrator(gen, resolver, nil, nil)
	result, err := orch.Assemble(context.Background(), Request{Commander: ephara()})
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got := deck.MainDeckCount(result.Deck.Cards); got != deck.MainDeckTarget {
		t.Errorf("mainboard = %d, want %d", got, deck.MainDeckTarget)
	}
}

func TestAssembleGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{skeletonErr: errors.New("model offline")}
	orch := NewOrchestrator(gen, &fakeResolver{}, nil, nil)

	_, err := orch.Assemble(context.Background(), Request{Commander: ephara()})
	if err == nil {
		t.Fatal("generation failure must abort assembly")
	}
	if !strings.Contains(err.Error(), "failed during initial generation") {
		t.Errorf("err = %v, want stage tag", err)
	}
	if orch.CurrentStage() != StageErrored {
		t.Errorf("stage = %s, want errored", orch.CurrentStage())
	}
}

func TestAssembleRequiresCommander(t *testing.T) {
	orch := NewOrchestrator(&fakeGenerator{}, &fakeResolver{}, nil, nil)
	if _, err := orch.Assemble(context.Background(), Request{}); err == nil {
		t.Error("missing commander must be rejected")
	}
}

func TestAssembleCancellation(t *testing.T) {
	entries, resolver := skeletonFixture(99)
	gen := &fakeGenerator{skeleton: entries}
	orch := NewOrchestrator(gen, resolver, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := orch.Assemble(ctx, Request{Commander: ephara()}); err == nil {
		t.Fatal("cancelled context must abort assembly")
	}
	if orch.CurrentStage() != StageErrored {
		t.Errorf("stage = %s, want errored", orch.CurrentStage())
	}
}
