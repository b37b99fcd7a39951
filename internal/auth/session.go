// Package auth — cookie-backed session management.
//
// STATELESS SESSIONS:
// The server keeps no session table. The cookie itself is the session: a
// signed JWT carrying the admin's identity and a last-activity timestamp.
// The signature (HMAC-SHA256 with a server-held secret) means the client can
// read its own session but cannot forge or alter one.
//
// The trade-off is deliberate: there is nothing to look up on each request
// and nothing to replicate between servers, but a still-valid cookie cannot
// be revoked before it expires. For a single-admin wedding site with a
// 2-hour inactivity window, that is acceptable.
//
// TWO-TIER AUTHENTICATION CHECK:
// Rendering a page must not extend a session — only real admin actions
// should. So the API is split:
//
//	Read(r)        → decode the cookie, no side effects
//	Check(sess)    → pure predicate: logged in and not idle-expired
//	Refresh(w, s)  → stamp last-activity and re-issue the cookie
//	Clear(w)       → delete the cookie
//
// Read-only paths stop after Check. Mutating paths (and the RequireAdmin
// middleware) also call Refresh, which is what implements the sliding
// 2-hour inactivity window.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the session cookie in development.
	CookieName = "admin-session"

	// SecureCookieName is used when cookies are marked Secure. The __Host-
	// prefix makes the browser enforce Secure, Path=/ and no Domain
	// attribute, so the cookie can never be set by a subdomain.
	SecureCookieName = "__Host-wedding-admin-session"

	// SessionTimeout is the inactivity window. A session whose last
	// activity is older than this is expired no matter what the cookie
	// says about being logged in.
	SessionTimeout = 2 * time.Hour

	// MinSecretLength guards against weak signing keys. There is no
	// fallback secret: a missing or short secret is a startup failure,
	// never a silently insecure default.
	MinSecretLength = 32

	issuer = "wedding-invite"
)

// ErrNoSession is returned by Read when the request carries no session
// cookie at all (as opposed to a cookie that fails verification).
var ErrNoSession = errors.New("auth: no session cookie")

// Session is the per-client authentication record carried in the cookie.
type Session struct {
	UserID       string
	Username     string
	LoggedIn     bool
	LastActivity time.Time
}

// sessionClaims is the JWT payload. Subject holds the user ID; LastActivity
// is epoch milliseconds so the inactivity window survives the round trip
// through the cookie.
type sessionClaims struct {
	Username     string `json:"username"`
	LoggedIn     bool   `json:"loggedIn"`
	LastActivity int64  `json:"lastActivity"`
	jwt.RegisteredClaims
}

// SessionService signs, reads, refreshes and destroys session cookies.
type SessionService struct {
	secret []byte
	secure bool
}

// NewSessionService creates a SessionService.
//
// secret must be at least 32 characters of externally supplied randomness
// (SESSION_SECRET env var). secure controls the cookie's Secure flag and
// selects the __Host- cookie name; it should be true whenever the site is
// served over HTTPS.
func NewSessionService(secret string, secure bool) (*SessionService, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("auth: session secret must be at least %d characters", MinSecretLength)
	}
	return &SessionService{secret: []byte(secret), secure: secure}, nil
}

// CookieName returns the name the service reads and writes.
func (s *SessionService) CookieName() string {
	if s.secure {
		return SecureCookieName
	}
	return CookieName
}

// Issue signs sess into a fresh cookie on w, replacing whatever session
// cookie the client previously held. Login calls this with a brand-new
// Session value, so no field from a pre-existing session survives — that is
// the defense against session fixation.
func (s *SessionService) Issue(w http.ResponseWriter, sess Session) error {
	now := time.Now()

	claims := sessionClaims{
		Username:     sess.Username,
		LoggedIn:     sess.LoggedIn,
		LastActivity: sess.LastActivity.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  sess.UserID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
			// The token dies when the inactivity window would close,
			// even if someone replays it outside a browser.
			ExpiresAt: jwt.NewNumericDate(sess.LastActivity.Add(SessionTimeout)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return fmt.Errorf("auth: signing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName(),
		Value:    signed,
		Path:     "/",
		MaxAge:   int(SessionTimeout.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Read decodes and verifies the session cookie on r. It never mutates
// anything — safe to call from render paths.
//
// Returns ErrNoSession if the cookie is absent, or a verification error if
// it is present but tampered, malformed, or past its hard expiry.
func (s *SessionService) Read(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(s.CookieName())
	if err != nil || cookie.Value == "" {
		return Session{}, ErrNoSession
	}

	token, err := jwt.ParseWithClaims(
		cookie.Value,
		&sessionClaims{},
		func(token *jwt.Token) (any, error) {
			// Reject algorithm-confusion tokens up front.
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Session{}, fmt.Errorf("auth: invalid session cookie: %w", err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return Session{}, errors.New("auth: invalid session claims")
	}

	return Session{
		UserID:       claims.Subject,
		Username:     claims.Username,
		LoggedIn:     claims.LoggedIn,
		LastActivity: time.UnixMilli(claims.LastActivity),
	}, nil
}

// Check is the side-effect-free authentication predicate: the session is
// valid only while it is logged in, tied to a user, and the inactivity
// window has not closed. It never touches the cookie, so render paths can
// call it without silently extending the session.
func (s *SessionService) Check(sess Session) bool {
	if !sess.LoggedIn || sess.UserID == "" {
		return false
	}
	return time.Since(sess.LastActivity) < SessionTimeout
}

// Refresh stamps the session's last activity and re-issues the cookie,
// sliding the inactivity window forward. If the session turns out to be
// expired at refresh time, the cookie is cleared instead and false is
// returned.
//
// Re-signing can only fail on an HMAC error, which a well-formed service
// cannot produce; a failed re-issue just leaves the previous (still valid)
// cookie in place, so it is deliberately not fatal.
func (s *SessionService) Refresh(w http.ResponseWriter, sess Session) (Session, bool) {
	if !s.Check(sess) {
		s.Clear(w)
		return Session{}, false
	}

	sess.LastActivity = time.Now()
	_ = s.Issue(w, sess)
	return sess, true
}

// Clear tells the browser to delete the session cookie immediately.
func (s *SessionService) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
