// Package api provides the REST API server for the deck builder.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mastanley13/MTGDeck-sub000/internal/api/handlers"
	"github.com/mastanley13/MTGDeck-sub000/internal/scryfall"
)

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	addr       string
	logger     *zap.Logger

	deckHandler       *handlers.DeckHandler
	cardHandler       *handlers.CardHandler
	validationHandler *handlers.ValidationHandler
	assemblyHandler   *handlers.AssemblyHandler
}

// Config holds configuration for the API server.
type Config struct {
	Host string
	Port int
}

// DefaultConfig returns the default API server configuration.
func DefaultConfig() *Config {
	return &Config{
		Host: "127.0.0.1",
		Port: 8787,
	}
}

// Services holds the backends the API handlers delegate to.
type Services struct {
	DeckStore DeckStore
	Lookup    CardLookup
	Searcher  CardSearcher
	Assembler Assembler
}

// Aliases so callers wire the server without importing handlers.
type (
	DeckStore    = handlers.DeckStore
	CardLookup   = handlers.CardLookup
	CardSearcher = handlers.CardSearcher
	Assembler    = handlers.Assembler
)

var _ CardSearcher = (*scryfall.Client)(nil)

// NewServer creates a new API server over the given services.
func NewServer(cfg *Config, services *Services, logger *zap.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		router:            chi.NewRouter(),
		addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		logger:            logger,
		deckHandler:       handlers.NewDeckHandler(services.DeckStore, services.Lookup),
		cardHandler:       handlers.NewCardHandler(services.Lookup, services.Searcher),
		validationHandler: handlers.NewValidationHandler(),
		assemblyHandler:   handlers.NewAssemblyHandler(services.Assembler, services.Lookup),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	// Assembly requests can sit on the language model for a while.
	s.router.Use(middleware.Timeout(5 * time.Minute))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.router.Use(s.jsonContentTypeMiddleware)
}

// jsonContentTypeMiddleware enforces application/json for requests
// with bodies.
func (s *Server) jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}
			contentType := r.Header.Get("Content-Type")
			if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
				http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Router exposes the handler for tests and embedding.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the API server in a goroutine.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", zap.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("API server error", zap.Error(err))
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is configured to listen on.
func (s *Server) Addr() string {
	return s.addr
}
