package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// okHandler records whether it ran and what session it saw.
type okHandler struct {
	called bool
	sess   Session
	found  bool
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.sess, h.found = SessionFromContext(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestRequireAdmin_NoCookie(t *testing.T) {
	ss := newTestSessionService(t)
	inner := &okHandler{}
	guard := RequireAdmin(ss)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	rec := httptest.NewRecorder()

	guard.ServeHTTP(rec, req)

	if inner.called {
		t.Error("handler ran without a session cookie")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unauthorized - Admin access required") {
		t.Errorf("body = %q, want the generic unauthorized message", rec.Body.String())
	}
}

func TestRequireAdmin_ValidSession(t *testing.T) {
	ss := newTestSessionService(t)
	inner := &okHandler{}
	guard := RequireAdmin(ss)(inner)

	cookie := issueCookie(t, ss, loggedInSession())
	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	guard.ServeHTTP(rec, req)

	if !inner.called {
		t.Fatal("handler did not run for a valid session")
	}
	if !inner.found {
		t.Fatal("SessionFromContext() found no session inside the guard")
	}
	if inner.sess.UserID != "user-1" {
		t.Errorf("session UserID = %q, want %q", inner.sess.UserID, "user-1")
	}

	// The guard refreshes on every pass, so a re-issued cookie must be set.
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge <= 0 {
		t.Error("expected the guard to re-issue the session cookie")
	}
}

func TestRequireAdmin_IdleExpiredSession(t *testing.T) {
	ss := newTestSessionService(t)
	inner := &okHandler{}
	guard := RequireAdmin(ss)(inner)

	// The inactivity window closed an hour ago. The JWT's hard expiry
	// (lastActivity + 2h) is also past, so Read itself rejects the cookie.
	stale := loggedInSession()
	stale.LastActivity = time.Now().Add(-SessionTimeout - time.Hour)

	cookie := issueCookie(t, ss, stale)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/rsvp", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	guard.ServeHTTP(rec, req)

	if inner.called {
		t.Error("handler ran for an idle-expired session")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSessionFromContext_OutsideGuard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := SessionFromContext(req.Context()); ok {
		t.Error("SessionFromContext() = ok outside the middleware")
	}
}
