package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mdhafiz/wedding-invite/internal/apperror"
	"github.com/mdhafiz/wedding-invite/internal/model"
	"github.com/mdhafiz/wedding-invite/internal/repository"
)

// compile-time check that *DB implements repository.AdminRepository
var _ repository.AdminRepository = (*DB)(nil)

// Create inserts the admin account. Two constraints do the real enforcement:
// UNIQUE on username ("one account per username") and UNIQUE on the constant
// singleton column, which caps the table at a single row no matter how many
// setup requests race past the service's count check. Either violation comes
// back as apperror.ErrConflict so the service can translate it.
func (db *DB) CreateAdmin(ctx context.Context, user *model.AdminUser) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO admin_users (id, username, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("admin user", user.Username)
		}
		return fmt.Errorf("sqlite: inserting admin user %q: %w", user.Username, err)
	}

	return nil
}

// GetByUsername looks an admin up for login.
// Returns apperror.ErrNotFound when no such account exists; the service
// must collapse that case and a wrong password into the same generic error.
func (db *DB) GetAdminByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	return db.getAdmin(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM admin_users WHERE username = ?`, username)
}

// GetByID retrieves an admin by their opaque ID.
func (db *DB) GetAdminByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return db.getAdmin(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM admin_users WHERE id = ?`, id)
}

func (db *DB) getAdmin(ctx context.Context, query, arg string) (*model.AdminUser, error) {
	var u model.AdminUser

	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("admin user", arg)
		}
		return nil, fmt.Errorf("sqlite: getting admin user %q: %w", arg, err)
	}

	return &u, nil
}

// Count returns the number of admin rows. The setup flow uses this to
// enforce the bootstrap-once rule: any count above zero closes the door.
func (db *DB) CountAdmins(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_users`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting admin users: %w", err)
	}
	return count, nil
}
