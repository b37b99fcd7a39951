package auth

import (
	"context"
	"net/http"
)

// contextKey is an unexported type used for context keys in this package.
// A package-private key type means only this package can read or write the
// session stored in a request context — no other package can collide with
// or shadow it.
type contextKey string

const sessionKey contextKey = "session"

// RequireAdmin is the fail-closed guard for admin routes.
//
// It reads the session cookie, checks it, and — because every route behind
// it may mutate state — refreshes the last-activity stamp, sliding the
// 2-hour inactivity window forward. Anything short of a fully valid session
// ends the request with 401 and, where a stale cookie exists, clears it.
//
// Render-style read paths that must not extend the session should call
// SessionService.Read + Check directly instead of sitting behind this
// middleware.
func RequireAdmin(sessions *SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Read(r)
			if err != nil {
				unauthorized(w)
				return
			}

			sess, ok := sessions.Refresh(w, sess)
			if !ok {
				// Refresh already cleared the expired cookie.
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext retrieves the authenticated session stored by
// RequireAdmin. The second return is false on routes outside the guard.
func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok && sess.UserID != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized - Admin access required"}`))
}
