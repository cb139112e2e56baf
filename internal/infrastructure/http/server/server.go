// Package server provides the HTTP server for the grocery cart API
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/config"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/http/handlers"
	"github.com/marcusha429/my-ecommerce-project/internal/infrastructure/http/middleware"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/inbound"
	"github.com/marcusha429/my-ecommerce-project/internal/ports/outbound"
)

// healthChecker is implemented by AI adapters that can verify upstream reachability.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	config            *config.Config
	logger            *zap.Logger
	router            *chi.Mux
	server            *http.Server
	cartService       inbound.CartService
	suggestionService inbound.SuggestionService
	aiService         outbound.AIService
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	cartService inbound.CartService,
	suggestionService inbound.SuggestionService,
	aiService outbound.AIService,
) *Server {
	s := &Server{
		config:            cfg,
		logger:            logger,
		cartService:       cartService,
		suggestionService: suggestionService,
		aiService:         aiService,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)

	cartHandlers := handlers.NewCartHandlers(s.cartService, s.logger)
	aiHandlers := handlers.NewAIHandlers(s.suggestionService, s.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.config.Auth.JWTSecret))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandlers.GetCart)
			r.Post("/add", cartHandlers.AddItem)
			r.Put("/update", cartHandlers.UpdateItem)
			r.Delete("/remove/{productID}", cartHandlers.RemoveItem)
			r.Delete("/clear", cartHandlers.ClearCart)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/analyze-cart", aiHandlers.AnalyzeCart)
			r.Post("/check-recipe", aiHandlers.CheckRecipe)
		})
	})

	return r
}

// handleHealth reports service liveness and upstream AI reachability.
// A failed AI check degrades the report but never fails the endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	ai := "unknown"

	if checker, ok := s.aiService.(healthChecker); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := checker.HealthCheck(ctx); err != nil {
			s.logger.Warn("AI health check failed", zap.Error(err))
			status = "degraded"
			ai = "unavailable"
		} else {
			ai = "healthy"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"ai":        ai,
		"timestamp": time.Now().Unix(),
		"version":   s.config.App.Version,
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
