package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/deckio"
	"github.com/mastanley13/MTGDeck-sub000/internal/validator"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <decklist>",
		Short: "Validate a plain-text Commander deck list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open deck list: %w", err)
			}
			defer func() { _ = file.Close() }()

			list, err := deckio.Parse(file)
			if err != nil {
				return fmt.Errorf("parse deck list: %w", err)
			}

			ctx := cmd.Context()
			var commander *deck.Card
			if list.Commander != "" {
				card, err := a.lookup.ResolveByName(ctx, list.Commander)
				if err != nil {
					return fmt.Errorf("resolve commander %q: %w", list.Commander, err)
				}
				commander = &card
			}

			names := make([]string, 0, len(list.Entries))
			quantities := make(map[string]int, len(list.Entries))
			for _, line := range list.Entries {
				names = append(names, line.Name)
				quantities[strings.ToLower(line.Name)] += line.Quantity
			}
			batch, err := a.lookup.ResolveAll(ctx, names)
			if err != nil {
				return fmt.Errorf("resolve cards: %w", err)
			}
			for _, name := range batch.Unresolved {
				fmt.Printf("  ? unresolved: %s\n", name)
			}

			cards := make([]deck.CardEntry, 0, len(batch.Resolved))
			for _, card := range batch.Resolved {
				qty := quantities[strings.ToLower(card.Name)]
				if qty < 1 {
					qty = 1
				}
				cards = append(cards, deck.CardEntry{Card: card, Quantity: qty})
			}

			checks := validator.Validate(commander, cards)
			printChecks(checks)

			if !validator.IsValid(commander, cards) {
				return fmt.Errorf("deck list is not a legal Commander deck")
			}
			fmt.Println("Deck list is legal.")
			return nil
		},
	}
}

func printChecks(checks []validator.CheckResult) {
	for _, check := range checks {
		mark := "ok"
		if !check.Valid {
			mark = "FAIL"
		}
		fmt.Printf("[%s] %s: %s\n", mark, check.Name, check.Message)
		for _, v := range check.Violations {
			fmt.Printf("       - %s: %s\n", v.Card.Name, v.Reason)
		}
	}
}
