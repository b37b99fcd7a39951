// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and routes.
// Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (multiple entry points could use the same server config)
// - Clean (main.go stays minimal — just "start the server")
//
// This is the "composition root" pattern — all dependencies are wired
// in one place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mdhafiz/wedding-invite/internal/auth"
	"github.com/mdhafiz/wedding-invite/internal/captcha"
	"github.com/mdhafiz/wedding-invite/internal/handler"
	"github.com/mdhafiz/wedding-invite/internal/middleware"
	sqliteRepo "github.com/mdhafiz/wedding-invite/internal/repository/sqlite"
	"github.com/mdhafiz/wedding-invite/internal/sanitize"
	"github.com/mdhafiz/wedding-invite/internal/service"
)

// Config holds server configuration.
// Using a struct for config (instead of individual parameters) makes it easy to:
// - Add new config options without changing function signatures
// - Pass config around as a single value
// - Load config from env vars in one place (main.go)
type Config struct {
	Port           int
	DBPath         string // path to the SQLite database file
	SessionSecret  string // HMAC key for the session cookie, must be at least 32 chars
	HCaptchaSecret string // server-side hCaptcha secret; empty means every RSVP fails captcha
	DisableSetup   bool   // hard-disables POST /api/admin/setup once the site is live
	SecureCookies  bool   // switches the session cookie to __Host- + Secure (HTTPS only)
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection (db). When the server shuts down,
// we must close this connection to flush any pending writes and release the
// file lock. This is handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a new Server with the given config.
//
// DEPENDENCY INJECTION & WIRING:
// This is where the entire dependency chain is assembled:
//  1. Open the database (sqlite.New) and seed the wedding details row
//  2. Create the shared sanitizer, password hasher, session signer, captcha client
//  3. Create the service layer with the repository interfaces
//  4. Create the handlers with the services
//  5. Wire handlers to routes
//
// Each layer only receives what it needs:
// - Services get repository interfaces (not the concrete sqlite.DB)
// - Handlers get services (not repositories or the DB)
//
// IMPORT ALIAS:
// We import repository/sqlite as `sqliteRepo` to avoid confusion with
// the sqlite driver package.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	// === CREATE DATABASE ===
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// POST /api/admin/login     → verify credentials, set session cookie
// POST /api/admin/logout    → clear session cookie              [admin]
// GET  /api/admin/me        → current admin identity            [admin]
// POST /api/admin/setup     → bootstrap the first admin account
// GET  /api/admin/rsvp      → RSVP responses + stats            [admin]
// GET  /api/wedding-details → wedding details for the invitation pages
// PUT  /api/wedding-details → partial update of details         [admin]
// GET  /api/rsvp            → RSVP responses + stats (public)
// POST /api/rsvp            → submit an RSVP (sanitize → validate → captcha → insert)
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added. Our order:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
func (s *Server) setupRoutes() error {
	// === Global Middleware ===
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Shared infrastructure ===
	sanitizer := sanitize.New(s.logger)
	passwords := auth.NewPasswordService()

	sessions, err := auth.NewSessionService(s.config.SessionSecret, s.config.SecureCookies)
	if err != nil {
		return fmt.Errorf("creating session service: %w", err)
	}

	verifier := captcha.NewHCaptcha(s.config.HCaptchaSecret)

	// === Seed the wedding details row ===
	// The invitation pages need a details row from the very first request, so
	// the default bilingual content is inserted here if the table is empty.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.db.SeedWeddingDetails(ctx); err != nil {
		return fmt.Errorf("seeding wedding details: %w", err)
	}

	// === Services and handlers ===
	// Notice: handlers never touch the database directly, and services never
	// touch HTTP. Clean separation.
	authService := service.NewAuthService(s.db, passwords, sanitizer, s.logger)
	rsvpService := service.NewRSVPService(s.db, verifier, sanitizer, s.logger)
	weddingService := service.NewWeddingService(s.db, sanitizer, s.logger)

	authHandler := handler.NewAuthHandler(authService, sessions, s.config.DisableSetup, s.logger)
	rsvpHandler := handler.NewRSVPHandler(rsvpService, s.logger)
	weddingHandler := handler.NewWeddingHandler(weddingService, s.logger)

	// === API Routes ===
	s.router.Route("/api", func(r chi.Router) {
		// Public routes — reachable without a session cookie.
		r.Get("/wedding-details", weddingHandler.HandleGet)
		r.Get("/rsvp", rsvpHandler.HandleList)
		r.Post("/rsvp", rsvpHandler.HandleSubmit)
		r.Post("/admin/login", authHandler.HandleLogin)
		r.Post("/admin/setup", authHandler.HandleSetup)

		// Admin routes — RequireAdmin validates the session cookie, refreshes
		// the inactivity window, and puts the session in the request context.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(sessions))
			r.Post("/admin/logout", authHandler.HandleLogout)
			r.Get("/admin/me", authHandler.HandleMe)
			r.Get("/admin/rsvp", rsvpHandler.HandleList)
			r.Put("/wedding-details", weddingHandler.HandleUpdate)
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
//
// If we skip step 3, the database file might be left in an inconsistent state.
// The `defer s.db.Close()` ensures this happens even if something panics.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine (so it doesn't block)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
