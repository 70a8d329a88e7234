package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mastanley13/MTGDeck-sub000/internal/analytics"
	"github.com/mastanley13/MTGDeck-sub000/internal/deck"
	"github.com/mastanley13/MTGDeck-sub000/internal/deckio"
)

func newStatsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats <decklist>",
		Short: "Show deck statistics and render an HTML report",
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
			d := deck.New()
			if list.Name != "" {
				d.Name = list.Name
			}
			if list.Commander != "" {
				commander, err := a.lookup.ResolveByName(ctx, list.Commander)
				if err != nil {
					return fmt.Errorf("resolve commander %q: %w", list.Commander, err)
				}
				d = deck.SetCommander(d, &commander)
			}
			for _, line := range list.Entries {
				card, err := a.lookup.ResolveByName(ctx, line.Name)
				if err != nil {
					fmt.Printf("  ? unresolved: %s\n", line.Name)
					continue
				}
				d = deck.AddCard(d, card, line.Quantity)
			}

			fmt.Printf("%s: %d/%d cards, average mana value %.2f\n\n",
				d.Name, deck.TotalCount(d.Cards, d.Commander), deck.TotalTarget,
				analytics.AverageManaValue(d.Cards))

			counts := analytics.CategoryCounts(d)
			categories := make([]deck.Category, 0, len(counts))
			for category := range counts {
				categories = append(categories, category)
			}
			sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
			for _, category := range categories {
				fmt.Printf("  %-14s %d\n", category, counts[category])
			}

			curve := analytics.ManaCurve(d.Cards)
			fmt.Println("\nMana curve (nonland):")
			for _, point := range curve {
				fmt.Printf("  %-3s %s\n", point.Label, strings.Repeat("#", point.Count))
			}

			if output != "" {
				if err := analytics.RenderDeckReport(d, analytics.DefaultChartConfig(), output); err != nil {
					return fmt.Errorf("render report: %w", err)
				}
				fmt.Printf("\nReport written to %s.\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write an HTML chart report to this file")
	return cmd
}
