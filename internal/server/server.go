// Package server wires the HTTP surface: the streaming optimize endpoint,
// the session credential endpoints, and the middleware chain.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/zhengjr9/promptyoo/internal/config"
	"github.com/zhengjr9/promptyoo/internal/deepseek"
	"github.com/zhengjr9/promptyoo/internal/fallback"
	"github.com/zhengjr9/promptyoo/internal/gemini"
	"github.com/zhengjr9/promptyoo/internal/provider"
	"github.com/zhengjr9/promptyoo/internal/relay"
	"github.com/zhengjr9/promptyoo/internal/session"
)

// Server is the Promptyoo relay HTTP server.
type Server struct {
	httpServer *http.Server
}

// New constructs a Server from the given config.
func New(cfg *config.Config) *Server {
	var client provider.Client
	switch cfg.Provider {
	case "gemini":
		client = gemini.NewClient(cfg.Model)
	default:
		client = deepseek.NewClient(cfg.UpstreamBaseURL, cfg.Model, cfg.UpstreamProxy)
	}

	store := session.NewStore()
	optimize := relay.NewHandler(client, store, fallback.ForPolicy(cfg.FallbackPolicy), cfg.UpstreamAPIKey, cfg.RequestTimeout)
	apiKey := session.NewHandler(store, cfg.SecureCookies)

	router := mux.NewRouter()
	router.Handle("/api/optimize", optimize).Methods(http.MethodPost)
	router.Handle("/api/api-key", apiKey).Methods(http.MethodGet, http.MethodPost, http.MethodDelete)

	var handler http.Handler = router
	handler = corsMiddleware(handler, cfg.AllowedOrigin)
	handler = loggingMiddleware(handler)
	handler = recoveryMiddleware(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: cfg.RequestTimeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start begins listening and blocks until the server is stopped.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Handler returns the underlying http.Handler (for use in tests with httptest.NewServer).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
