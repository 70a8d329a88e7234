// Package assembly orchestrates AI deck construction: generate a
// skeleton, resolve it into real cards, validate, repair violations,
// and only then commit the finished deck.
package assembly

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mastanley13/MTGDeck-sub000/internal/cardlookup"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/events"
	"github.com/mastanley13/MTGDeck-sub000/internal/generator"
	"github.com/mastanley13/MTGDeck-sub000/internal/validator"
)

// Stage is one phase of the assembly pipeline.
type Stage string

// Pipeline stages, in order. Errored is terminal for a failed run.
const (
	StageIdle             Stage = "idle"
	StageGenerating       Stage = "generating"
	StageValidating       Stage = "validating"
	StageFixingViolations Stage = "fixing-violations"
	StageRevalidating     Stage = "revalidating-final"
	StageHydrating        Stage = "hydrating-card-data"
	StageComplete         Stage = "complete"
	StageErrored          Stage = "errored"
)

// maxReplacementAttempts is how many model suggestions a violating
// card gets before the slot falls back to a basic land.
const maxReplacementAttempts = 2

// Generator produces card name suggestions.
type Generator interface {
	GenerateSkeleton(ctx context.Context, req generator.SkeletonRequest) ([]generator.NamedEntry, error)
	ProposeReplacement(ctx context.Context, req generator.ReplacementRequest) (generator.NamedEntry, error)
}

// Resolver turns card names into real card data.
type Resolver interface {
	ResolveAll(ctx context.Context, names []string) (cardlookup.BatchResult, error)
	ResolveByName(ctx context.Context, name string) (deck.Card, error)
}

// Request describes the deck to assemble.
type Request struct {
	Commander deck.Card
	DeckName  string
	Theme     string
}

// Result is a finished assembly run.
type Result struct {
	Deck deck.Deck

	// Checks is the final validation report for the assembled deck.
	Checks []validator.CheckResult

	// Replacements counts cards swapped while fixing violations.
	Replacements int

	// BasicFills counts basic lands added to reach the mainboard target.
	BasicFills int
}

// Orchestrator runs the assembly pipeline. Safe for concurrent stage
// inspection; Assemble itself runs one deck at a time per call.
type Orchestrator struct {
	generator  Generator
	resolver   Resolver
	dispatcher *events.EventDispatcher
	logger     *zap.Logger

	mu    sync.RWMutex
	stage Stage
}

// NewOrchestrator creates an orchestrator. Dispatcher and logger may
// be nil.
func NewOrchestrator(gen Generator, resolver Resolver, dispatcher *events.EventDispatcher, logger *zap.Logger) *Orchestrator {
	if dispatcher == nil {
		dispatcher = events.NewEventDispatcher(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		generator:  gen,
		resolver:   resolver,
		dispatcher: dispatcher,
		logger:     logger,
		stage:      StageIdle,
	}
}

// CurrentStage reports the pipeline stage of the running (or last)
// assembly.
func (o *Orchestrator) CurrentStage() Stage {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.stage
}

func (o *Orchestrator) setStage(ctx context.Context, stage Stage) {
	o.mu.Lock()
	o.stage = stage
	o.mu.Unlock()

	o.logger.Debug("assembly stage", zap.String("stage", string(stage)))
	o.dispatcher.Dispatch(events.Event{
		Type:      events.TypeAssemblyStage,
		TypedData: events.AssemblyStageEvent{Stage: string(stage)},
		Context:   ctx,
	})
}

func (o *Orchestrator) fail(ctx context.Context, stage string, err error) error {
	o.setStage(ctx, StageErrored)
	wrapped := fmt.Errorf("failed during %s: %w", stage, err)
	o.dispatcher.Dispatch(events.Event{
		Type:      events.TypeAssemblyFailed,
		TypedData: events.AssemblyFailedEvent{Stage: stage, Error: wrapped.Error()},
		Context:   ctx,
	})
	return wrapped
}

// Assemble runs the full pipeline and returns a complete, valid deck.
// Nothing is committed on error; the returned deck on success always
// carries exactly the mainboard target of cards.
func (o *Orchestrator) Assemble(ctx context.Context, req Request) (Result, error) {
	if req.Commander.ID == "" && req.Commander.Name == "" {
		return Result{}, fmt.Errorf("a commander is required to assemble a deck")
	}

	// Generate the skeleton.
	o.setStage(ctx, StageGenerating)
	entries, err := o.generator.GenerateSkeleton(ctx, generator.SkeletonRequest{
		CommanderName: req.Commander.Name,
		ColorIdentity: req.Commander.ColorIdentity,
		Theme:         req.Theme,
		CardCount:     deck.MainDeckTarget,
	})
	if err != nil {
		return Result{}, o.fail(ctx, "initial generation", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	batch, err := o.resolver.ResolveAll(ctx, names)
	if err != nil {
		return Result{}, o.fail(ctx, "initial generation", err)
	}
	o.dispatcher.Dispatch(events.Event{
		Type: events.TypeCardsResolved,
		TypedData: events.CardsResolvedEvent{
			Requested:  len(names),
			Resolved:   len(batch.Resolved),
			Unresolved: len(batch.Unresolved),
		},
		Context: ctx,
	})
	if len(batch.Unresolved) > 0 {
		o.logger.Info("unresolved generator suggestions dropped",
			zap.Strings("names", batch.Unresolved))
	}

	// Build the working copy. The caller's deck is untouched until
	// the whole pipeline succeeds.
	working := deck.New()
	working.Name = req.DeckName
	if working.Name == "" {
		working.Name = req.Commander.Name + " Deck"
	}
	working.Description = req.Theme
	working = deck.SetCommander(working, &req.Commander)
	for _, card := range batch.Resolved {
		working = deck.AddCard(working, card, 1)
	}

	// First validation pass.
	o.setStage(ctx, StageValidating)
	if err := ctx.Err(); err != nil {
		return Result{}, o.fail(ctx, "validation", err)
	}
	checks := validator.Validate(working.Commander, working.Cards)

	// Replace violating cards, two model attempts each, then fall
	// back to basic lands via the top-up below.
	o.setStage(ctx, StageFixingViolations)
	working, replacements, err := o.fixViolations(ctx, working, req, checks)
	if err != nil {
		return Result{}, o.fail(ctx, "violation fixing", err)
	}

	// Trim or top up to exactly the mainboard target. Basic lands in
	// the commander's colors carry no identity or singleton risk, so
	// this can never introduce new violations.
	working = trimToTarget(working)
	working, basicFills := topUpWithBasics(working, req.Commander.ColorIdentity)

	// Final validation. The deck must be structurally complete now.
	o.setStage(ctx, StageRevalidating)
	if err := ctx.Err(); err != nil {
		return Result{}, o.fail(ctx, "final validation", err)
	}
	finalChecks := validator.Validate(working.Commander, working.Cards)
	if count := deck.MainDeckCount(working.Cards); count != deck.MainDeckTarget {
		return Result{}, o.fail(ctx, "final validation",
			fmt.Errorf("assembled deck has %d cards, want %d", count, deck.MainDeckTarget))
	}

	// Hydrate the statically filled basics into real card data where
	// possible. Failures here are cosmetic and never abort the run.
	o.setStage(ctx, StageHydrating)
	working = o.hydrateBasics(ctx, working)

	// One deterministic repair pass before hand-off.
	working = deck.Normalize(working)

	o.setStage(ctx, StageComplete)
	o.dispatcher.Dispatch(events.Event{
		Type: events.TypeAssemblyCompleted,
		TypedData: events.AssemblyCompletedEvent{
			DeckName:      working.Name,
			MainDeckCount: deck.MainDeckCount(working.Cards),
			Replacements:  replacements,
			BasicFills:    basicFills,
		},
		Context: ctx,
	})

	return Result{
		Deck:         working,
		Checks:       finalChecks,
		Replacements: replacements,
		BasicFills:   basicFills,
	}, nil
}

// fixViolations removes every card flagged by the card-level checks
// and asks the generator for substitutes. A slot whose substitutes
// keep failing is simply left empty for the basic-land top-up.
func (o *Orchestrator) fixViolations(ctx context.Context, working deck.Deck, req Request, checks []validator.CheckResult) (deck.Deck, int, error) {
	violating := collectViolatingCards(checks)
	if len(violating) == 0 {
		return working, 0, nil
	}

	existing := make(map[string]bool, len(working.Cards))
	for _, entry := range working.Cards {
		existing[strings.ToLower(entry.Name)] = true
	}

	replacements := 0
	for _, v := range violating {
		if err := ctx.Err(); err != nil {
			return working, replacements, err
		}
		// Commander violations cannot be fixed by swapping mainboard
		// cards; they surface in the final report instead.
		if working.Commander != nil && v.Card.ID == working.Commander.ID {
			continue
		}

		working = deck.RemoveCard(working, v.Card.ID)
		delete(existing, strings.ToLower(v.Card.Name))

		replacement, ok := o.findReplacement(ctx, req, v, existing)
		if !ok {
			continue
		}
		working = deck.AddCard(working, replacement, 1)
		existing[strings.ToLower(replacement.Name)] = true
		replacements++
	}
	return working, replacements, nil
}

// findReplacement asks the model for substitutes, admitting the first
// one that resolves, clears the admission gate, and is not already in
// the deck.
func (o *Orchestrator) findReplacement(ctx context.Context, req Request, v validator.Violation, existing map[string]bool) (deck.Card, bool) {
	names := make([]string, 0, len(existing))
	for name := range existing {
		names = append(names, name)
	}

	for attempt := 0; attempt < maxReplacementAttempts; attempt++ {
		entry, err := o.generator.ProposeReplacement(ctx, generator.ReplacementRequest{
			CommanderName: req.Commander.Name,
			ColorIdentity: req.Commander.ColorIdentity,
			Theme:         req.Theme,
			RejectedName:  v.Card.Name,
			Reason:        v.Reason,
			ExistingNames: names,
		})
		if err != nil {
			o.logger.Warn("replacement proposal failed",
				zap.String("rejected", v.Card.Name),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}
		if existing[strings.ToLower(entry.Name)] {
			continue
		}

		card, err := o.resolver.ResolveByName(ctx, entry.Name)
		if err != nil {
			o.logger.Warn("replacement did not resolve",
				zap.String("suggestion", entry.Name),
				zap.Error(err))
			continue
		}
		if admission := validator.CanAdmit(&card, &req.Commander); !admission.Valid {
			o.logger.Debug("replacement rejected by admission gate",
				zap.String("suggestion", card.Name),
				zap.String("reason", admission.Message))
			continue
		}
		return card, true
	}

	o.logger.Info("no usable replacement found, slot falls back to basic land",
		zap.String("rejected", v.Card.Name))
	return deck.Card{}, false
}

// hydrateBasics swaps statically built basic lands for real card data
// when the resolver can supply it.
func (o *Orchestrator) hydrateBasics(ctx context.Context, working deck.Deck) deck.Deck {
	for _, entry := range working.Cards {
		if !strings.HasPrefix(entry.ID, staticBasicIDPrefix) {
			continue
		}
		card, err := o.resolver.ResolveByName(ctx, entry.Name)
		if err != nil {
			o.logger.Debug("basic land hydration skipped",
				zap.String("name", entry.Name), zap.Error(err))
			continue
		}
		qty := entry.Quantity
		working = deck.RemoveCard(working, entry.ID)
		working = deck.AddCard(working, card, qty)
	}
	return working
}

// collectViolatingCards gathers the cards flagged by the card-level
// checks, deduplicated by entry ID.
func collectViolatingCards(checks []validator.CheckResult) []validator.Violation {
	var out []validator.Violation
	seen := make(map[string]bool)
	for _, check := range checks {
		for _, v := range check.Violations {
			if v.Card.ID == "" || seen[v.Card.ID] {
				continue
			}
			seen[v.Card.ID] = true
			out = append(out, v)
		}
	}
	return out
}

// trimToTarget removes cards from the end of the mainboard until the
// count is at or below the target.
func trimToTarget(working deck.Deck) deck.Deck {
	for deck.MainDeckCount(working.Cards) > deck.MainDeckTarget && len(working.Cards) > 0 {
		last := working.Cards[len(working.Cards)-1]
		over := deck.MainDeckCount(working.Cards) - deck.MainDeckTarget
		if last.Quantity > over {
			working = deck.SetQuantity(working, last.ID, last.Quantity-over)
		} else {
			working = deck.RemoveCard(working, last.ID)
		}
	}
	return working
}
