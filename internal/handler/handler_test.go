package handler_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mdhafiz/wedding-invite/internal/auth"
	"github.com/mdhafiz/wedding-invite/internal/handler"
	sqliteRepo "github.com/mdhafiz/wedding-invite/internal/repository/sqlite"
	"github.com/mdhafiz/wedding-invite/internal/sanitize"
	"github.com/mdhafiz/wedding-invite/internal/service"
)

// stubVerifier stands in for the hCaptcha client: fixed verdict.
type stubVerifier struct {
	ok bool
}

func (v *stubVerifier) Verify(_ context.Context, _ string) (bool, error) {
	return v.ok, nil
}

// testEnv wires the full stack over an in-memory database, mirroring the
// composition done in the server package. Handler tests go through a real
// chi router, so the middleware and URL patterns are exercised too.
type testEnv struct {
	router   *chi.Mux
	sessions *auth.SessionService
	auths    *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, true, false)
}

func newTestEnvWith(t *testing.T, captchaOK, setupDisabled bool) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	db, err := sqliteRepo.New(":memory:")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.SeedWeddingDetails(context.Background()); err != nil {
		t.Fatalf("seeding wedding details: %v", err)
	}

	sanitizer := sanitize.New(logger)
	sessions, err := auth.NewSessionService("test-session-secret-32-chars-min!!", false)
	if err != nil {
		t.Fatalf("creating session service: %v", err)
	}

	auths := service.NewAuthService(db, auth.NewPasswordServiceForTest(4), sanitizer, logger)
	rsvps := service.NewRSVPService(db, &stubVerifier{ok: captchaOK}, sanitizer, logger)
	weddings := service.NewWeddingService(db, sanitizer, logger)

	authHandler := handler.NewAuthHandler(auths, sessions, setupDisabled, logger)
	rsvpHandler := handler.NewRSVPHandler(rsvps, logger)
	weddingHandler := handler.NewWeddingHandler(weddings, logger)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Get("/wedding-details", weddingHandler.HandleGet)
		r.Get("/rsvp", rsvpHandler.HandleList)
		r.Post("/rsvp", rsvpHandler.HandleSubmit)
		r.Post("/admin/login", authHandler.HandleLogin)
		r.Post("/admin/setup", authHandler.HandleSetup)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(sessions))
			r.Post("/admin/logout", authHandler.HandleLogout)
			r.Get("/admin/me", authHandler.HandleMe)
			r.Get("/admin/rsvp", rsvpHandler.HandleList)
			r.Put("/wedding-details", weddingHandler.HandleUpdate)
		})
	})

	return &testEnv{router: router, sessions: sessions, auths: auths}
}

// createAdmin provisions the single admin account directly via the service.
func (e *testEnv) createAdmin(t *testing.T, username, password string) {
	t.Helper()
	if _, err := e.auths.CreateAdmin(context.Background(), username, password); err != nil {
		t.Fatalf("creating admin: %v", err)
	}
}

// loginCookie performs a real login request and returns the session cookie.
func (e *testEnv) loginCookie(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := e.do(http.MethodPost, "/api/admin/login",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: status %d, body %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("login set %d cookies, want 1", len(cookies))
	}
	return cookies[0]
}

// do runs a request through the router and returns the recorder.
func (e *testEnv) do(method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
