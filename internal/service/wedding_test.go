package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/mdhafiz/wedding-invite/internal/apperror"
	"github.com/mdhafiz/wedding-invite/internal/model"
	"github.com/mdhafiz/wedding-invite/internal/sanitize"
)

// mockWeddingRepo implements repository.WeddingRepository. It records the
// field maps passed to UpdateWeddingDetails so tests can inspect exactly
// what the service let through.
type mockWeddingRepo struct {
	details    *model.WeddingDetails
	lastUpdate map[string]string
	getErr     error
	updateErr  error
}

func newMockWeddingRepo() *mockWeddingRepo {
	return &mockWeddingRepo{details: model.DefaultWeddingDetails()}
}

func (m *mockWeddingRepo) GetWeddingDetails(_ context.Context) (*model.WeddingDetails, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	result := *m.details
	return &result, nil
}

func (m *mockWeddingRepo) UpdateWeddingDetails(_ context.Context, fields map[string]string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.lastUpdate = fields
	return nil
}

func (m *mockWeddingRepo) SeedWeddingDetails(_ context.Context) error {
	return nil
}

func newTestWeddingService(t *testing.T) (*WeddingService, *mockWeddingRepo) {
	t.Helper()
	repo := newMockWeddingRepo()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewWeddingService(repo, sanitize.New(logger), logger)
	return svc, repo
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestWeddingGet_ReturnsDetails(t *testing.T) {
	svc, _ := newTestWeddingService(t)

	details, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if details.GroomName == "" || details.BrideName == "" {
		t.Error("expected seeded default names")
	}
}

func TestWeddingGet_NotFoundPropagates(t *testing.T) {
	svc, repo := newTestWeddingService(t)
	repo.getErr = apperror.NotFound("wedding details", "1")

	_, err := svc.Get(context.Background())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound preserved through wrapping", err)
	}
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestWeddingUpdate_AppliesKnownFields(t *testing.T) {
	svc, repo := newTestWeddingService(t)

	err := svc.Update(context.Background(), map[string]string{
		"groom_name": "Hafiz",
		"bride_name": "Afini",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if repo.lastUpdate["groom_name"] != "Hafiz" || repo.lastUpdate["bride_name"] != "Afini" {
		t.Errorf("update map = %v", repo.lastUpdate)
	}
}

func TestWeddingUpdate_DropsUnknownFields(t *testing.T) {
	svc, repo := newTestWeddingService(t)

	err := svc.Update(context.Background(), map[string]string{
		"groom_name": "Hafiz",
		"id":         "999", // clients echo these back; never writable
		"updated_at": "1970-01-01",
		"drop_table": "x",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(repo.lastUpdate) != 1 {
		t.Errorf("update map = %v, want only groom_name", repo.lastUpdate)
	}
	if _, ok := repo.lastUpdate["id"]; ok {
		t.Error("id must never be updatable")
	}
}

func TestWeddingUpdate_EmptyAfterFiltering(t *testing.T) {
	svc, _ := newTestWeddingService(t)

	err := svc.Update(context.Background(), map[string]string{"id": "999"})
	if err == nil {
		t.Fatal("Update() should reject a map with no known fields")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestWeddingUpdate_SanitizesValues(t *testing.T) {
	svc, repo := newTestWeddingService(t)

	err := svc.Update(context.Background(), map[string]string{
		"venue_name": "<script>alert(1)</script>Dewan",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := repo.lastUpdate["venue_name"]; got == "<script>alert(1)</script>Dewan" {
		t.Errorf("value stored without sanitization: %q", got)
	}
}

func TestWeddingUpdate_URLFieldValidated(t *testing.T) {
	svc, repo := newTestWeddingService(t)

	err := svc.Update(context.Background(), map[string]string{
		"qr_code_url": "javascript:alert(1)",
		"venue_name":  "Dewan Banquet",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := repo.lastUpdate["qr_code_url"]; got != "" {
		t.Errorf("qr_code_url = %q, want scrubbed to empty", got)
	}
}
