// ABOUTME: HTTP server wiring for the menu API, static files, and admin endpoints
// ABOUTME: Owns route registration, CORS, the session sweeper, and graceful shutdown

package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/2389/diner-menu/internal/auth"
	"github.com/2389/diner-menu/internal/config"
	"github.com/2389/diner-menu/internal/menu"
	"github.com/2389/diner-menu/internal/store"
)

// sessionSweepInterval is how often expired sessions are purged.
const sessionSweepInterval = time.Hour

// Server hosts the public menu API and the session-gated admin API.
type Server struct {
	config     *config.Config
	store      *store.SQLiteStore
	menu       *menu.Service
	auth       *auth.Authenticator
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a server over the given store using the given configuration.
func New(cfg *config.Config, s *store.SQLiteStore) *Server {
	srv := &Server{
		config: cfg,
		store:  s,
		menu:   menu.NewService(s),
		auth:   auth.NewAuthenticator(cfg.Admin.Password, cfg.Admin.SessionTTL, s),
		logger: slog.Default().With("component", "server"),
	}

	srv.httpServer = &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv
}

// Handler builds the complete HTTP handler, including static file serving
// and CORS. Exposed separately so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Public API
	mux.HandleFunc("GET /api/menu", s.handleMenu)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/status", s.handleAuthStatus)

	// Admin API - session required
	requireSession := auth.RequireSession(s.auth)
	mux.Handle("POST /api/categories", requireSession(http.HandlerFunc(s.handleCreateCategory)))
	mux.Handle("PUT /api/categories/{id}", requireSession(http.HandlerFunc(s.handleUpdateCategory)))
	mux.Handle("DELETE /api/categories/{id}", requireSession(http.HandlerFunc(s.handleDeleteCategory)))
	mux.Handle("POST /api/items", requireSession(http.HandlerFunc(s.handleCreateItem)))
	mux.Handle("PUT /api/items/{id}", requireSession(http.HandlerFunc(s.handleUpdateItem)))
	mux.Handle("DELETE /api/items/{id}", requireSession(http.HandlerFunc(s.handleDeleteItem)))
	mux.Handle("POST /api/settings", requireSession(http.HandlerFunc(s.handleUpdateSettings)))
	mux.Handle("POST /api/upload-hero", requireSession(http.HandlerFunc(s.handleUploadHero)))

	// Static files: uploads first (may live outside the static dir), then
	// everything else from the static dir
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.config.Server.UploadsDir))))
	mux.Handle("GET /", http.FileServer(http.Dir(s.config.Server.StaticDir)))

	return corsMiddleware(mux)
}

// corsMiddleware adds permissive CORS headers and answers OPTIONS preflights.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.HTTPAddr)
	if err != nil {
		return fmt.Errorf("listening on HTTP address: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	go s.sweepSessions(ctx)

	serverErr := s.waitForShutdownSignal(ctx, errCh)
	shutdownErr := s.gracefulShutdown()

	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// sweepSessions periodically removes expired sessions until the context is
// canceled.
func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.auth.SweepExpiredSessions(ctx); err != nil {
				s.logger.Warn("session sweep failed", "error", err)
			}
		}
	}
}

// waitForShutdownSignal waits for context cancellation or server error.
func (s *Server) waitForShutdownSignal(ctx context.Context, errCh chan error) error {
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
		return nil
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		return err
	}
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// handleHealth handles GET /health liveness checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
