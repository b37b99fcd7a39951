// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses, owns cookies
//	Service (Business layer) → sanitizes, validates, enforces rules
//	Repository (Data layer)  → reads/writes the database
//
// Services accept primitives and return domain errors; they know nothing
// about HTTP. The handlers translate apperror sentinels into status codes
// and decide when to issue or clear the session cookie.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rs/xid"

	"github.com/mdhafiz/wedding-invite/internal/apperror"
	"github.com/mdhafiz/wedding-invite/internal/auth"
	"github.com/mdhafiz/wedding-invite/internal/model"
	"github.com/mdhafiz/wedding-invite/internal/repository"
	"github.com/mdhafiz/wedding-invite/internal/sanitize"
)

// MinPasswordLength is the setup-flow minimum. Short, because the single
// admin is the couple themselves — bcrypt cost 12 carries the real weight.
const MinPasswordLength = 6

// invalidCredentials is the one message returned for every failed login.
// "User not found" and "wrong password" must be indistinguishable, so an
// attacker cannot enumerate usernames by probing the login endpoint.
const invalidCredentials = "Invalid credentials"

// AuthService owns admin-account rules: the bootstrap-once setup flow and
// credential verification. Session lifecycle lives in the auth package; the
// handlers connect the two.
type AuthService struct {
	admins    repository.AdminRepository
	passwords *auth.PasswordService
	sanitizer *sanitize.Sanitizer
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	admins repository.AdminRepository,
	passwords *auth.PasswordService,
	sanitizer *sanitize.Sanitizer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		admins:    admins,
		passwords: passwords,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// CreateAdmin creates the single back-office account.
//
// BOOTSTRAP-ONCE:
// The public setup flow may create exactly one account, ever. The row count
// is checked first for a friendly 403, and the single-row constraint on
// admin_users backs the rule up at the database level, so two concurrent
// setup requests cannot both insert.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*model.PublicUser, error) {
	count, err := s.admins.CountAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/auth: counting admins: %w", err)
	}
	if count > 0 {
		return nil, apperror.Forbidden("Admin user already exists. Setup can only be run once.")
	}

	cleaned, err := s.cleanUsername(username)
	if err != nil {
		return nil, err
	}

	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("service/auth: hashing setup password: %w", err)
	}

	admin := &model.AdminUser{
		ID:           xid.New().String(),
		Username:     cleaned,
		PasswordHash: hash,
	}
	if err := s.admins.CreateAdmin(ctx, admin); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			// Lost a setup race: another request inserted between our count
			// check and this insert. Same refusal as the count check.
			return nil, apperror.Forbidden("Admin user already exists. Setup can only be run once.")
		}
		return nil, fmt.Errorf("service/auth: creating admin %q: %w", cleaned, err)
	}

	s.logger.Info("admin account created",
		slog.String("userID", admin.ID),
		slog.String("username", admin.Username),
	)

	public := admin.Public()
	return &public, nil
}

// Login verifies credentials and returns the admin's public identity.
//
// Both failure modes — unknown username and wrong password — return the
// identical generic apperror.ErrUnauthorized. The password itself is never
// logged, and the hash never leaves this method.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.PublicUser, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperror.ValidationFailed("", "Username and password are required")
	}

	cleaned, err := s.cleanUsername(username)
	if err != nil {
		// A username the sanitizer had to touch cannot match a stored
		// account; collapse into the generic credentials error.
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	admin, err := s.admins.GetAdminByUsername(ctx, cleaned)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(invalidCredentials)
		}
		return nil, fmt.Errorf("service/auth: looking up admin %q: %w", cleaned, err)
	}

	if err := s.passwords.Verify(admin.PasswordHash, password); err != nil {
		s.logger.Warn("failed login attempt", slog.String("username", cleaned))
		return nil, apperror.Unauthorized(invalidCredentials)
	}

	s.logger.Info("admin logged in",
		slog.String("userID", admin.ID),
		slog.String("username", admin.Username),
	)

	public := admin.Public()
	return &public, nil
}

// GetUser returns the public identity behind a session's user ID.
func (s *AuthService) GetUser(ctx context.Context, id string) (*model.PublicUser, error) {
	if id == "" {
		return nil, apperror.Unauthorized("Not authenticated")
	}

	admin, err := s.admins.GetAdminByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			// The account behind a still-valid cookie is gone.
			return nil, apperror.Unauthorized("Not authenticated")
		}
		return nil, fmt.Errorf("service/auth: fetching admin %s: %w", id, err)
	}

	public := admin.Public()
	return &public, nil
}

// cleanUsername runs the username sanitizer and rejects any input it had to
// touch. An admin username is machine-chosen data, not prose — if cleaning
// changed it, the original was not a legal username.
func (s *AuthService) cleanUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	cleaned := s.sanitizer.Username(trimmed)
	if cleaned == "" || cleaned != trimmed {
		return "", apperror.ValidationFailed("username",
			"Username may only contain letters, numbers, underscore and hyphen (max 50 characters)")
	}
	return cleaned, nil
}
