package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mastanley13/MTGDeck-sub000/internal/assembly"
	"github.com/mastanley13/MTGDeck-sub000/internal/deckio"
	"github.com/mastanley13/MTGDeck-sub000/internal/events"
	"github.com/mastanley13/MTGDeck-sub000/internal/generator"
)

func newBuildCmd() *cobra.Command {
	var (
		theme    string
		deckName string
		output   string
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "build <commander name>",
		Short: "Assemble a full Commander deck around a commander",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()

			inferenceTimeout, err := a.cfg.GetInferenceTimeout()
			if err != nil {
				return fmt.Errorf("parse inference_timeout: %w", err)
			}
			ollamaConfig := generator.DefaultOllamaConfig()
			ollamaConfig.BaseURL = a.cfg.Generator.BaseURL
			ollamaConfig.Model = a.cfg.Generator.Model
			ollamaConfig.InferenceTimeout = inferenceTimeout
			ollamaConfig.AutoPullModel = a.cfg.Generator.AutoPullModel

			client := generator.NewOllamaClient(ollamaConfig)
			status := client.CheckAvailability(ctx)
			if !status.Available {
				return fmt.Errorf("language model is not available: %s", status.Error)
			}

			commander, err := a.lookup.ResolveByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("resolve commander %q: %w", args[0], err)
			}

			dispatcher := events.NewEventDispatcher(a.logger)
			dispatcher.Register(events.NewFuncObserver("progress", func(e events.Event) error {
				if stage, ok := e.TypedData.(events.AssemblyStageEvent); ok {
					fmt.Printf("  stage: %s\n", stage.Stage)
				}
				return nil
			}, events.TypeAssemblyStage))

			orchestrator := assembly.NewOrchestrator(
				generator.NewDeckGenerator(client, a.logger),
				a.lookup,
				dispatcher,
				a.logger,
			)

			fmt.Printf("Assembling a deck for %s...\n", commander.Name)
			result, err := orchestrator.Assemble(ctx, assembly.Request{
				Commander: commander,
				DeckName:  deckName,
				Theme:     theme,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nAssembled %q: %d replacements, %d basic land fills.\n",
				result.Deck.Name, result.Replacements, result.BasicFills)
			printChecks(result.Checks)

			if save {
				record, err := a.store.Save(ctx, a.cfg.App.UserID, "", result.Deck)
				if err != nil {
					return fmt.Errorf("save deck: %w", err)
				}
				fmt.Printf("Saved as %s.\n", record.ID)
			}

			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer func() { _ = file.Close() }()
				if err := deckio.Write(file, result.Deck); err != nil {
					return fmt.Errorf("write deck list: %w", err)
				}
				a.logger.Info("deck list written", zap.String("path", output))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&theme, "theme", "t", "", "deck theme, e.g. \"blink\" or \"tokens\"")
	cmd.Flags().StringVarP(&deckName, "name", "n", "", "deck name (defaults to the commander's)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the deck list to this file")
	cmd.Flags().BoolVar(&save, "save", false, "save the deck to the local database")
	return cmd
}
