package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mdhafiz/wedding-invite/internal/apperror"
	"github.com/mdhafiz/wedding-invite/internal/model"
	"github.com/mdhafiz/wedding-invite/internal/repository"
)

// compile-time check that *DB implements repository.WeddingRepository
var _ repository.WeddingRepository = (*DB)(nil)

// weddingSchema declares the single-row content table. The id column is
// always 1 — Seed inserts that row once and Update only ever targets it.
const weddingSchema = `
	CREATE TABLE IF NOT EXISTS wedding_details (
		id                       INTEGER PRIMARY KEY,
		groom_name               TEXT NOT NULL,
		bride_name               TEXT NOT NULL,
		wedding_date             TEXT NOT NULL,
		wedding_date_ms          TEXT NOT NULL,
		ceremony_time_start      TEXT NOT NULL DEFAULT '',
		ceremony_time_end        TEXT NOT NULL DEFAULT '',
		reception_time_start     TEXT NOT NULL DEFAULT '',
		reception_time_end       TEXT NOT NULL DEFAULT '',
		venue_name               TEXT NOT NULL,
		venue_address            TEXT NOT NULL,
		venue_google_maps_url    TEXT NOT NULL DEFAULT '',
		contact1_name            TEXT NOT NULL DEFAULT '',
		contact1_phone           TEXT NOT NULL DEFAULT '',
		contact1_label_en        TEXT NOT NULL DEFAULT '',
		contact1_label_ms        TEXT NOT NULL DEFAULT '',
		contact2_name            TEXT NOT NULL DEFAULT '',
		contact2_phone           TEXT NOT NULL DEFAULT '',
		contact2_label_en        TEXT NOT NULL DEFAULT '',
		contact2_label_ms        TEXT NOT NULL DEFAULT '',
		contact3_name            TEXT NOT NULL DEFAULT '',
		contact3_phone           TEXT NOT NULL DEFAULT '',
		contact3_label_en        TEXT NOT NULL DEFAULT '',
		contact3_label_ms        TEXT NOT NULL DEFAULT '',
		contact4_name            TEXT NOT NULL DEFAULT '',
		contact4_phone           TEXT NOT NULL DEFAULT '',
		contact4_label_en        TEXT NOT NULL DEFAULT '',
		contact4_label_ms        TEXT NOT NULL DEFAULT '',
		rsvp_deadline            TEXT NOT NULL,
		rsvp_deadline_ms         TEXT NOT NULL,
		event_type_en            TEXT NOT NULL DEFAULT '',
		event_type_ms            TEXT NOT NULL DEFAULT '',
		dress_code_en            TEXT NOT NULL DEFAULT '',
		dress_code_ms            TEXT NOT NULL DEFAULT '',
		parking_info_en          TEXT NOT NULL DEFAULT '',
		parking_info_ms          TEXT NOT NULL DEFAULT '',
		food_info_en             TEXT NOT NULL DEFAULT '',
		food_info_ms             TEXT NOT NULL DEFAULT '',
		invitation_note_en       TEXT NOT NULL DEFAULT '',
		invitation_note_ms       TEXT NOT NULL DEFAULT '',
		groom_title_en           TEXT NOT NULL DEFAULT '',
		groom_title_ms           TEXT NOT NULL DEFAULT '',
		bride_title_en           TEXT NOT NULL DEFAULT '',
		bride_title_ms           TEXT NOT NULL DEFAULT '',
		groom_father_name        TEXT NOT NULL DEFAULT '',
		groom_mother_name        TEXT NOT NULL DEFAULT '',
		bride_father_name        TEXT NOT NULL DEFAULT '',
		bride_mother_name        TEXT NOT NULL DEFAULT '',
		groom_father_title_en    TEXT NOT NULL DEFAULT '',
		groom_father_title_ms    TEXT NOT NULL DEFAULT '',
		groom_mother_title_en    TEXT NOT NULL DEFAULT '',
		groom_mother_title_ms    TEXT NOT NULL DEFAULT '',
		bride_father_title_en    TEXT NOT NULL DEFAULT '',
		bride_father_title_ms    TEXT NOT NULL DEFAULT '',
		bride_mother_title_en    TEXT NOT NULL DEFAULT '',
		bride_mother_title_ms    TEXT NOT NULL DEFAULT '',
		bismillah_text_en        TEXT NOT NULL DEFAULT '',
		bismillah_text_ms        TEXT NOT NULL DEFAULT '',
		with_pleasure_text_en    TEXT NOT NULL DEFAULT '',
		with_pleasure_text_ms    TEXT NOT NULL DEFAULT '',
		together_with_text_en    TEXT NOT NULL DEFAULT '',
		together_with_text_ms    TEXT NOT NULL DEFAULT '',
		invitation_message_en    TEXT NOT NULL DEFAULT '',
		invitation_message_ms    TEXT NOT NULL DEFAULT '',
		cordially_invite_text_en TEXT NOT NULL DEFAULT '',
		cordially_invite_text_ms TEXT NOT NULL DEFAULT '',
		qr_code_url              TEXT NOT NULL DEFAULT '',
		qr_owner_name            TEXT NOT NULL DEFAULT '',
		qr_bank_name             TEXT NOT NULL DEFAULT '',
		updated_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

// weddingColumns is the SELECT/INSERT column list, in the same order the
// model declares its updatable fields, bracketed by id and updated_at.
var weddingColumns = "id, " + strings.Join(model.WeddingFields(), ", ") + ", updated_at"

// Get returns the single wedding-details row.
// apperror.ErrNotFound means the table was never seeded.
func (db *DB) GetWeddingDetails(ctx context.Context) (*model.WeddingDetails, error) {
	var d model.WeddingDetails

	err := db.conn.QueryRowContext(ctx,
		`SELECT `+weddingColumns+` FROM wedding_details WHERE id = 1`,
	).Scan(weddingScanTargets(&d)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("wedding details", "1")
		}
		return nil, fmt.Errorf("sqlite: getting wedding details: %w", err)
	}

	return &d, nil
}

// Seed inserts the default row if the table is empty. Called once at
// startup; a no-op on every start after the first.
func (db *DB) SeedWeddingDetails(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wedding_details`,
	).Scan(&count); err != nil {
		return fmt.Errorf("sqlite: counting wedding details: %w", err)
	}
	if count > 0 {
		return nil
	}

	d := model.DefaultWeddingDetails()
	d.UpdatedAt = time.Now()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(model.WeddingFields())+2), ", ")
	args := make([]any, 0, len(model.WeddingFields())+2)
	for _, target := range weddingScanTargets(d) {
		args = append(args, target)
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO wedding_details (`+weddingColumns+`) VALUES (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: seeding wedding details: %w", err)
	}

	return nil
}

// Update applies a partial update to the single row. Keys are already
// sanitized and allowlisted by the service; this defends once more anyway,
// because column names cannot be parameterized — only values can.
func (db *DB) UpdateWeddingDetails(ctx context.Context, fields map[string]string) error {
	assignments := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)

	// Walk the canonical field order so the generated SQL is
	// deterministic regardless of map iteration order.
	for _, name := range model.WeddingFields() {
		value, ok := fields[name]
		if !ok {
			continue
		}
		assignments = append(assignments, name+" = ?")
		args = append(args, value)
	}

	if len(assignments) == 0 {
		return apperror.ValidationFailed("", "no fields to update")
	}

	assignments = append(assignments, "updated_at = ?")
	args = append(args, time.Now())

	_, err := db.conn.ExecContext(ctx,
		`UPDATE wedding_details SET `+strings.Join(assignments, ", ")+` WHERE id = 1`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating wedding details: %w", err)
	}

	return nil
}

// weddingScanTargets returns pointers to d's fields in weddingColumns
// order. Shared by Get (Scan destinations) and Seed (insert values, after
// dereference by the driver) so the column order is written exactly once.
func weddingScanTargets(d *model.WeddingDetails) []any {
	return []any{
		&d.ID,
		&d.GroomName, &d.BrideName,
		&d.WeddingDate, &d.WeddingDateMS,
		&d.CeremonyTimeStart, &d.CeremonyTimeEnd,
		&d.ReceptionTimeStart, &d.ReceptionTimeEnd,
		&d.VenueName, &d.VenueAddress, &d.VenueGoogleMapsURL,
		&d.Contact1Name, &d.Contact1Phone, &d.Contact1LabelEN, &d.Contact1LabelMS,
		&d.Contact2Name, &d.Contact2Phone, &d.Contact2LabelEN, &d.Contact2LabelMS,
		&d.Contact3Name, &d.Contact3Phone, &d.Contact3LabelEN, &d.Contact3LabelMS,
		&d.Contact4Name, &d.Contact4Phone, &d.Contact4LabelEN, &d.Contact4LabelMS,
		&d.RSVPDeadline, &d.RSVPDeadlineMS,
		&d.EventTypeEN, &d.EventTypeMS,
		&d.DressCodeEN, &d.DressCodeMS,
		&d.ParkingInfoEN, &d.ParkingInfoMS,
		&d.FoodInfoEN, &d.FoodInfoMS,
		&d.InvitationNoteEN, &d.InvitationNoteMS,
		&d.GroomTitleEN, &d.GroomTitleMS, &d.BrideTitleEN, &d.BrideTitleMS,
		&d.GroomFatherName, &d.GroomMotherName,
		&d.BrideFatherName, &d.BrideMotherName,
		&d.GroomFatherTitleEN, &d.GroomFatherTitleMS,
		&d.GroomMotherTitleEN, &d.GroomMotherTitleMS,
		&d.BrideFatherTitleEN, &d.BrideFatherTitleMS,
		&d.BrideMotherTitleEN, &d.BrideMotherTitleMS,
		&d.BismillahTextEN, &d.BismillahTextMS,
		&d.WithPleasureTextEN, &d.WithPleasureTextMS,
		&d.TogetherWithTextEN, &d.TogetherWithTextMS,
		&d.InvitationMessageEN, &d.InvitationMessageMS,
		&d.CordiallyInviteTextEN, &d.CordiallyInviteTextMS,
		&d.QRCodeURL, &d.QROwnerName, &d.QRBankName,
		&d.UpdatedAt,
	}
}
