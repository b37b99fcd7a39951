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

// compile-time check that *DB implements repository.RSVPRepository
var _ repository.RSVPRepository = (*DB)(nil)

// Create inserts a guest response. phone is expected in normalized +60 form;
// the UNIQUE index on it turns a duplicate submission into
// apperror.ErrConflict even when two requests race past the service's
// pre-check.
func (db *DB) Create(ctx context.Context, resp *model.RSVPResponse) error {
	if resp.SubmittedAt.IsZero() {
		resp.SubmittedAt = time.Now()
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO rsvp_responses (id, name, phone, pax, submitted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		resp.ID,
		resp.Name,
		resp.Phone,
		resp.Pax,
		resp.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("rsvp response", resp.Phone)
		}
		return fmt.Errorf("sqlite: inserting rsvp response: %w", err)
	}

	return nil
}

// GetByPhone finds the response for a normalized phone number, or
// apperror.ErrNotFound if the number has not RSVP'd yet.
func (db *DB) GetByPhone(ctx context.Context, phone string) (*model.RSVPResponse, error) {
	var r model.RSVPResponse

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, phone, pax, submitted_at
		 FROM rsvp_responses WHERE phone = ?`,
		phone,
	).Scan(&r.ID, &r.Name, &r.Phone, &r.Pax, &r.SubmittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("rsvp response", phone)
		}
		return nil, fmt.Errorf("sqlite: getting rsvp response for %q: %w", phone, err)
	}

	return &r, nil
}

// List returns all responses, newest first, for the admin views.
func (db *DB) List(ctx context.Context) ([]model.RSVPResponse, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, phone, pax, submitted_at
		 FROM rsvp_responses ORDER BY submitted_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing rsvp responses: %w", err)
	}
	defer rows.Close()

	responses := []model.RSVPResponse{}
	for rows.Next() {
		var r model.RSVPResponse
		if err := rows.Scan(&r.ID, &r.Name, &r.Phone, &r.Pax, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning rsvp response: %w", err)
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating rsvp responses: %w", err)
	}

	return responses, nil
}

// Stats aggregates the dashboard numbers in one query.
// COALESCE handles the empty table, where SUM would otherwise be NULL.
func (db *DB) Stats(ctx context.Context) (model.RSVPStats, error) {
	var stats model.RSVPStats

	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(pax), 0) FROM rsvp_responses`,
	).Scan(&stats.TotalResponses, &stats.TotalGuests)
	if err != nil {
		return model.RSVPStats{}, fmt.Errorf("sqlite: aggregating rsvp stats: %w", err)
	}

	return stats, nil
}
