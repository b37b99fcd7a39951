package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mdhafiz/wedding-invite/internal/apperror"
	"github.com/mdhafiz/wedding-invite/internal/model"
	"github.com/mdhafiz/wedding-invite/internal/repository"
	"github.com/mdhafiz/wedding-invite/internal/sanitize"
)

// WeddingService reads and edits the single wedding-details row.
type WeddingService struct {
	details   repository.WeddingRepository
	sanitizer *sanitize.Sanitizer
	logger    *slog.Logger
}

// NewWeddingService creates a WeddingService.
func NewWeddingService(
	details repository.WeddingRepository,
	sanitizer *sanitize.Sanitizer,
	logger *slog.Logger,
) *WeddingService {
	return &WeddingService{
		details:   details,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// Get returns the current wedding details. Public — the invitation page
// itself renders from this.
func (s *WeddingService) Get(ctx context.Context) (*model.WeddingDetails, error) {
	details, err := s.details.GetWeddingDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/wedding: fetching details: %w", err)
	}
	return details, nil
}

// Update applies a partial edit from the admin editor.
//
// Every value passes through the per-key sanitizer dispatch (phone fields
// get the phone treatment, *_url fields the URL treatment, the rest
// free-text). Keys outside the explicit field allowlist — including id and
// updated_at, which clients sometimes echo back — are silently dropped.
func (s *WeddingService) Update(ctx context.Context, fields map[string]string) error {
	cleaned := make(map[string]string, len(fields))
	for key, value := range fields {
		if !model.IsWeddingField(key) {
			continue
		}
		cleaned[key] = s.sanitizer.FormValue(key, value)
	}

	if len(cleaned) == 0 {
		return apperror.ValidationFailed("", "No fields to update")
	}

	if err := s.details.UpdateWeddingDetails(ctx, cleaned); err != nil {
		return fmt.Errorf("service/wedding: updating details: %w", err)
	}

	s.logger.Info("wedding details updated", slog.Int("fields", len(cleaned)))
	return nil
}
