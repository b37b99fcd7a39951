package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mdhafiz/wedding-invite/internal/auth"
	"github.com/mdhafiz/wedding-invite/internal/service"
)

// AuthHandler manages admin login, logout, one-time setup and the "who am I"
// endpoint for the admin dashboard.
//
// HANDLER RESPONSIBILITIES:
//   - HandleLogin  → verify credentials, issue a fresh signed session cookie
//   - HandleLogout → clear the session cookie
//   - HandleSetup  → create the first (and only) admin account
//   - HandleMe     → return the currently logged-in admin's public identity
//
// DEPENDENCY CHAIN:
//   - auths    *service.AuthService  → credential checks and admin creation
//   - sessions *auth.SessionService  → signs/reads the stateless session cookie
type AuthHandler struct {
	auths         *service.AuthService
	sessions      *auth.SessionService
	setupDisabled bool
	logger        *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(
	auths *service.AuthService,
	sessions *auth.SessionService,
	setupDisabled bool,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auths:         auths,
		sessions:      sessions,
		setupDisabled: setupDisabled,
		logger:        logger,
	}
}

// credentialsRequest is the body for both login and setup.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin verifies admin credentials and issues the session cookie.
//
// HTTP: POST /api/admin/login
//
// SESSION FIXATION:
// On success we build a brand-new Session value and overwrite whatever cookie
// the browser sent. Nothing from a pre-login cookie survives into the
// authenticated session.
//
// The error path is deliberately uniform: unknown username and wrong password
// both come back as the same generic 401 so attackers cannot enumerate
// usernames by timing the message.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Username and password are required"})
		return
	}

	user, err := h.auths.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	sess := auth.Session{
		UserID:       user.ID,
		Username:     user.Username,
		LoggedIn:     true,
		LastActivity: time.Now(),
	}
	if err := h.sessions.Issue(w, sess); err != nil {
		h.logger.Error("login: issuing session cookie failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", map[string]interface{}{"user": user})
}

// HandleLogout clears the session cookie, effectively logging the admin out.
//
// HTTP: POST /api/admin/logout
// Auth: Required (RequireAdmin middleware)
//
// WHY POST AND NOT GET?
// Logout is a state-changing operation. Using GET would be vulnerable to
// CSRF and to browsers pre-fetching the URL. POST ensures intentional action.
//
// Since the session is stateless (a signed cookie), "logout" just means
// deleting the client-side cookie. There is no server-side record to revoke.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	writeSuccess(w, http.StatusOK, "Logged out successfully", nil)
}

// HandleSetup creates the first admin account.
//
// HTTP: POST /api/admin/setup
//
// BOOTSTRAP-ONCE:
// This endpoint exists so a fresh deployment can be claimed without shell
// access to the database. It refuses to run once any admin exists, and it can
// be disabled outright via configuration once the site is live.
func (h *AuthHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	if h.setupDisabled {
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Admin setup is disabled"})
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Username and password are required"})
		return
	}

	user, err := h.auths.CreateAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("admin account created", slog.String("userID", user.ID))
	writeSuccess(w, http.StatusCreated, "Admin user created successfully", map[string]interface{}{"userId": user.ID})
}

// HandleMe returns the currently authenticated admin's public identity.
//
// HTTP: GET /api/admin/me
// Auth: Required (RequireAdmin middleware sets the session in context)
//
// The dashboard calls this on load to decide whether to show the login form
// or the admin UI.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		// Should never happen on a RequireAdmin-protected route, but be safe.
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized - Admin access required"})
		return
	}

	user, err := h.auths.GetUser(r.Context(), sess.UserID)
	if err != nil {
		h.logger.Error("HandleMe: user lookup failed", slog.String("userID", sess.UserID))
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", map[string]interface{}{"user": user})
}
