package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/events"
	"github.com/mastanley13/MTGDeck-sub000/internal/validator"
)

type fakeResolver struct {
	cards map[string]deck.Card
}

func (f *fakeResolver) ResolveByName(_ context.Context, name string) (deck.Card, error) {
	card, ok := f.cards[strings.ToLower(name)]
	if !ok {
		return deck.Card{}, fmt.Errorf("%q: %w", name, cardlookup.ErrNotFound)
	}
	return card, nil
}

func (f *fakeResolver) ResolveAll(ctx context.Context, names []string) (cardlookup.BatchResult, error) {
	var result cardlookup.BatchResult
	for _, name := range names {
		card, err := f.ResolveByName(ctx, name)
		if err != nil {
			result.Unresolved = append(result.Unresolved, name)
			continue
		}
		result.Resolved = append(result.Resolved, card)
	}
	return result, nil
}

func testResolver() *fakeResolver {
	return &fakeResolver{cards: map[string]deck.Card{
		"ephara, god of the polis": {
			ID: "ephara", Name: "Ephara, God of the Polis",
			TypeLine:      "Legendary Enchantment Creature — God",
			ColorIdentity: []string{"W", "U"},
			Legalities:    map[string]string{"commander": "legal"},
		},
		"sol ring": {
			ID: "sol", Name: "Sol Ring", TypeLine: "Artifact",
			Legalities: map[string]string{"commander": "legal"},
		},
		"plains": {
			ID: "plains", Name: "Plains", TypeLine: "Basic Land — Plains",
			ColorIdentity: []string{"W"},
			Legalities:    map[string]string{"commander": "legal"},
		},
	}}
}

func TestCheckFileReportsValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ephara.txt")
	content := "Name: Ephara Blink\n\nCommander\n1 Ephara, God of the Polis\n\nDeck\n1 Sol Ring\n7 Plains\n1 Mystery Card\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dispatcher := events.NewEventDispatcher(nil)
	var detected []string
	dispatcher.Register(events.NewFuncObserver("capture", func(e events.Event) error {
		payload := e.TypedData.(events.DeckFileDetectedEvent)
		detected = append(detected, payload.Path)
		return nil
	}, events.TypeDeckFileDetected))

	w := New(dir, testResolver(), dispatcher, nil)
	var reports []Report
	w.OnReport = func(r Report) { reports = append(reports, r) }

	w.checkFile(context.Background(), path)

	if len(detected) != 1 || detected[0] != path {
		t.Errorf("detected = %v, want [%s]", detected, path)
	}
	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	report := reports[0]

	if report.DeckName != "Ephara Blink" {
		t.Errorf("deck name = %q", report.DeckName)
	}
	if len(report.Unresolved) != 1 || report.Unresolved[0] != "Mystery Card" {
		t.Errorf("unresolved = %v", report.Unresolved)
	}
	if len(report.Checks) != 4 {
		t.Fatalf("checks = %d, want 4", len(report.Checks))
	}
	for _, check := range report.Checks {
		if check.Name == validator.CheckCardCount && check.Valid {
			t.Error("an 8-card deck should fail the card count check")
		}
	}
}

func TestCheckFileSkipsUnparseable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(path, []byte("0 Sol Ring\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := New(dir, testResolver(), nil, nil)
	called := false
	w.OnReport = func(Report) { called = true }

	w.checkFile(context.Background(), path)
	if called {
		t.Error("unparseable list should not produce a report")
	}
}

func TestRunChecksExistingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	if err := os.WriteFile(existing, []byte("1 Sol Ring\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := New(dir, testResolver(), nil, nil)
	reportCh := make(chan Report, 4)
	w.OnReport = func(r Report) { reportCh <- r }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Startup sweep catches the pre-existing list.
	select {
	case r := <-reportCh:
		if r.Path != existing {
			t.Errorf("first report path = %q", r.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for startup report")
	}

	created := filepath.Join(dir, "created.txt")
	if err := os.WriteFile(created, []byte("1 Plains\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case r := <-reportCh:
		if r.Path != created {
			t.Errorf("second report path = %q", r.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change report")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestIsDeckList(t *testing.T) {
	if !isDeckList("deck.txt") || !isDeckList("DECK.TXT") || !isDeckList("a.dec") {
		t.Error("deck list extensions should match")
	}
	if isDeckList("notes.md") || isDeckList("deck.txt.swp") {
		t.Error("non-list files should not match")
	}
}
