// Package main is the entry point for the wedding invitation server.
//
// MAIN PACKAGE IN GO:
// Every Go program starts execution in the main() function of the "main" package.
// The main package should be kept minimal — its job is to:
// 1. Read configuration (from env vars)
// 2. Create dependencies (logger, database connections, etc.)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server, internal/handler, etc.).
// This separation makes the app testable and its components reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mdhafiz/wedding-invite/internal/server"
)

func main() {
	// === 1. SET UP LOGGING ===
	// slog.New creates a structured logger. slog.NewTextHandler outputs
	// human-readable logs to the terminal.
	//
	// Log levels (from least to most severe): Debug → Info → Warn → Error
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === 2. READ CONFIGURATION ===
	// Everything comes from environment variables. os.Getenv returns "" if the
	// variable isn't set, so we check and provide defaults where one is safe.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// === 3. DATABASE PATH ===
	// Default to "data/wedding.db" in the project root.
	// DB_PATH env var allows overriding for production deployments.
	// Example: DB_PATH=/var/lib/wedding/prod.db
	dbPath := "data/wedding.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	// Ensure the data directory exists.
	// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 4. SESSION SECRET ===
	// SESSION_SECRET signs the admin session cookie and must be a long random
	// string. Generate one with:
	//   SESSION_SECRET=$(openssl rand -hex 32)
	// Unlike optional integrations, there is no safe default here: a guessable
	// secret means anyone can forge an admin session, so we refuse to start.
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		logger.Error("SESSION_SECRET is required — generate one with: openssl rand -hex 32")
		os.Exit(1)
	}

	// === 5. CAPTCHA SECRET ===
	// HCAPTCHA_SECRET is the server-side key for verifying RSVP captcha tokens.
	// Verification fails closed, so without it every RSVP submission is
	// rejected. The server still starts — the admin side works fine without it.
	hcaptchaSecret := os.Getenv("HCAPTCHA_SECRET")
	if hcaptchaSecret == "" {
		logger.Warn("HCAPTCHA_SECRET not set — all RSVP submissions will fail captcha verification")
	}

	// === 6. HARDENING FLAGS ===
	// DISABLE_SETUP=true turns off the one-time admin bootstrap endpoint once
	// the site is live. COOKIE_SECURE=true switches the session cookie to the
	// __Host- prefixed, Secure variant (requires HTTPS).
	disableSetup := os.Getenv("DISABLE_SETUP") == "true"
	secureCookies := os.Getenv("COOKIE_SECURE") == "true"

	// === 7. CREATE AND START THE SERVER ===
	cfg := server.Config{
		Port:           port,
		DBPath:         dbPath,
		SessionSecret:  sessionSecret,
		HCaptchaSecret: hcaptchaSecret,
		DisableSetup:   disableSetup,
		SecureCookies:  secureCookies,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
