package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openedu-labs/deptchat-core/internal/core/ports/driving"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	production bool

	chatService driving.ChatService
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	Version        string
	Production     bool
	AllowedOrigins []string
	PublicDir      string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:           "0.0.0.0",
		Port:           3000,
		Version:        "dev",
		AllowedOrigins: []string{"*"},
		PublicDir:      "public",
	}
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, chatService driving.ChatService) *Server {
	s := &Server{
		router:      http.NewServeMux(),
		version:     cfg.Version,
		production:  cfg.Production,
		chatService: chatService,
	}

	s.setupRoutes(cfg)

	// Widget pages embed the chat endpoint cross-origin, so the whole
	// router sits behind CORS. Recovery wraps everything.
	handler := NewCORSMiddleware(cfg.AllowedOrigins).Handler(s.router)
	handler = NewLoggingMiddleware().Handler(handler)
	handler = NewRecoveryMiddleware().Handler(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config) {
	// Health endpoints
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Chat endpoint
	s.router.HandleFunc("POST /api/chat", s.handleChat)

	// Widget assets (chat page, embed scripts) - pass-through glue
	if cfg.PublicDir != "" {
		s.router.Handle("GET /", http.FileServer(http.Dir(cfg.PublicDir)))
	}
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the composed handler chain, for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
