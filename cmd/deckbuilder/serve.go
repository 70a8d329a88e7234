package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mastanley13/MTGDeck-sub000/internal/api"
	"github.com/mastanley13/MTGDeck-sub000/internal/assembly"
	"github.com/mastanley13/MTGDeck-sub000/internal/events"
	"github.com/mastanley13/MTGDeck-sub000/internal/generator"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

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

			dispatcher := events.NewEventDispatcher(a.logger)
			dispatcher.Register(events.NewLoggingObserver(a.logger, a.cfg.App.DebugMode))

			orchestrator := assembly.NewOrchestrator(
				generator.NewDeckGenerator(client, a.logger),
				a.lookup,
				dispatcher,
				a.logger,
			)

			server := api.NewServer(&api.Config{
				Host: a.cfg.Server.Host,
				Port: a.cfg.Server.Port,
			}, &api.Services{
				DeckStore: a.store,
				Lookup:    a.lookup,
				Searcher:  a.client,
				Assembler: orchestrator,
			}, a.logger)

			if err := server.Start(); err != nil {
				return fmt.Errorf("start server: %w", err)
			}
			fmt.Printf("API server running at http://%s\n", server.Addr())
			fmt.Println("Press Ctrl+C to stop")

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}
