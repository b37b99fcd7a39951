// Package repository defines the storage interfaces the service layer
// depends on. The sqlite subpackage provides the real implementation;
// tests substitute in-memory fakes.
//
// Services receive these interfaces (never *sqlite.DB directly), so the
// business logic is testable without a database and the driver could be
// swapped without touching a service.
package repository

import (
	"context"

	"github.com/mdhafiz/wedding-invite/internal/model"
)

// AdminRepository persists the back-office account.
//
// CreateAdmin must fail with a conflict error when the username already
// exists — the username column carries a UNIQUE constraint, so the rule holds
// even under concurrent setup requests.
type AdminRepository interface {
	CreateAdmin(ctx context.Context, user *model.AdminUser) error
	GetAdminByUsername(ctx context.Context, username string) (*model.AdminUser, error)
	GetAdminByID(ctx context.Context, id string) (*model.AdminUser, error)
	CountAdmins(ctx context.Context) (int, error)
}

// WeddingRepository manages the single wedding-details row (id = 1).
//
// UpdateWeddingDetails is partial: only the supplied columns change, and
// updated_at is stamped on every call. SeedWeddingDetails inserts the default
// row only when the table is empty.
type WeddingRepository interface {
	GetWeddingDetails(ctx context.Context) (*model.WeddingDetails, error)
	UpdateWeddingDetails(ctx context.Context, fields map[string]string) error
	SeedWeddingDetails(ctx context.Context) error
}

// RSVPRepository persists guest responses.
//
// Create must fail with a conflict error when the normalized phone number
// already has a response — backed by a UNIQUE index, not just the service's
// pre-check, so duplicates cannot slip in between check and insert.
type RSVPRepository interface {
	Create(ctx context.Context, resp *model.RSVPResponse) error
	GetByPhone(ctx context.Context, phone string) (*model.RSVPResponse, error)
	List(ctx context.Context) ([]model.RSVPResponse, error)
	Stats(ctx context.Context) (model.RSVPStats, error)
}
