package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mdhafiz/wedding-invite/internal/apperror"
	"github.com/mdhafiz/wedding-invite/internal/model"
)

func createTestRSVP(t *testing.T, db *DB, id, name, phone string, pax int) *model.RSVPResponse {
	t.Helper()
	resp := &model.RSVPResponse{ID: id, Name: name, Phone: phone, Pax: pax}
	if err := db.Create(context.Background(), resp); err != nil {
		t.Fatalf("failed to create test rsvp: %v", err)
	}
	return resp
}

func TestRSVPCreate(t *testing.T) {
	db := newTestDB(t)

	resp := createTestRSVP(t, db, "r-1", "Ahmad", "+60123456789", 2)
	if resp.SubmittedAt.IsZero() {
		t.Error("Create() did not stamp SubmittedAt")
	}
}

func TestRSVPCreate_DuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	createTestRSVP(t, db, "r-1", "Ahmad", "+60123456789", 2)

	// Same normalized number again — the UNIQUE index is the enforcement
	// the service's friendly pre-check only fronts for.
	err := db.Create(context.Background(), &model.RSVPResponse{
		ID:    "r-2",
		Name:  "Someone Else",
		Phone: "+60123456789",
		Pax:   1,
	})
	if err == nil {
		t.Fatal("Create() accepted a duplicate phone")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestRSVPGetByPhone(t *testing.T) {
	db := newTestDB(t)
	created := createTestRSVP(t, db, "r-1", "Ahmad", "+60123456789", 2)

	got, err := db.GetByPhone(context.Background(), "+60123456789")
	if err != nil {
		t.Fatalf("GetByPhone() error = %v", err)
	}
	if got.ID != created.ID || got.Name != "Ahmad" || got.Pax != 2 {
		t.Errorf("GetByPhone() = %+v", got)
	}
}

func TestRSVPGetByPhone_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetByPhone(context.Background(), "+60999999999")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRSVPList_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	older := &model.RSVPResponse{
		ID: "r-1", Name: "Early Bird", Phone: "+60111111111", Pax: 1,
		SubmittedAt: time.Now().Add(-time.Hour),
	}
	if err := db.Create(context.Background(), older); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	createTestRSVP(t, db, "r-2", "Latecomer", "+60122222222", 3)

	responses, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("len = %d, want 2", len(responses))
	}
	if responses[0].Name != "Latecomer" {
		t.Errorf("first response = %q, want newest first", responses[0].Name)
	}
}

func TestRSVPList_Empty(t *testing.T) {
	db := newTestDB(t)

	responses, err := db.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	// Empty slice, not nil — it must encode as [] in JSON, not null.
	if responses == nil {
		t.Error("List() = nil, want empty slice")
	}
	if len(responses) != 0 {
		t.Errorf("len = %d, want 0", len(responses))
	}
}

func TestRSVPStats(t *testing.T) {
	db := newTestDB(t)

	// Empty table: COALESCE keeps the sum at 0 instead of NULL.
	stats, err := db.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalResponses != 0 || stats.TotalGuests != 0 {
		t.Errorf("Stats() = %+v on empty table", stats)
	}

	createTestRSVP(t, db, "r-1", "Ahmad", "+60111111111", 2)
	createTestRSVP(t, db, "r-2", "Siti", "+60122222222", 5)

	stats, err = db.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalResponses != 2 {
		t.Errorf("TotalResponses = %d, want 2", stats.TotalResponses)
	}
	if stats.TotalGuests != 7 {
		t.Errorf("TotalGuests = %d, want 7", stats.TotalGuests)
	}
}
