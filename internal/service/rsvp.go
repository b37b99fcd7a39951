package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rs/xid"

	"github.com/mdhafiz/wedding-invite/internal/apperror"
	"github.com/mdhafiz/wedding-invite/internal/captcha"
	"github.com/mdhafiz/wedding-invite/internal/model"
	"github.com/mdhafiz/wedding-invite/internal/repository"
	"github.com/mdhafiz/wedding-invite/internal/sanitize"
)

// RSVP form limits.
const (
	MaxGuestNameLength = 100
	MinPax             = 1
	MaxPax             = 10
)

// phonePattern validates a normalized Malaysian number: optional +, the 60
// country code, then 9 or 10 digits. Checked after normalization, so dashes
// and spaces typed by the guest are long gone.
var phonePattern = regexp.MustCompile(`^\+?60[0-9]{9,10}$`)

// RSVPService runs the public submission flow and the admin-facing reads.
type RSVPService struct {
	rsvps     repository.RSVPRepository
	verifier  captcha.Verifier
	sanitizer *sanitize.Sanitizer
	logger    *slog.Logger
}

// NewRSVPService creates an RSVPService.
func NewRSVPService(
	rsvps repository.RSVPRepository,
	verifier captcha.Verifier,
	sanitizer *sanitize.Sanitizer,
	logger *slog.Logger,
) *RSVPService {
	return &RSVPService{
		rsvps:     rsvps,
		verifier:  verifier,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// SubmitInput is the raw RSVP form as received from the guest.
type SubmitInput struct {
	Name         string
	Phone        string
	Pax          int
	CaptchaToken string
}

// SubmitReason classifies a submission outcome so the HTTP layer can pick
// a status code without parsing messages. The service itself stays
// HTTP-agnostic.
type SubmitReason int

const (
	ReasonAccepted SubmitReason = iota
	ReasonValidation
	ReasonCaptcha
	ReasonDuplicate
	ReasonInternal
)

// SubmitResult is the structured outcome rendered back to the guest:
// a human-readable message plus field-keyed errors on failure. The flow
// never surfaces raw error text to the client.
type SubmitResult struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Errors   map[string][]string `json:"errors,omitempty"`
	Reason   SubmitReason        `json:"-"`
	Response *model.RSVPResponse `json:"-"`
}

// Submit runs the whole RSVP pipeline:
//
//	sanitize → normalize phone → validate → verify captcha → uniqueness → insert
//
// Validation failures stop before any storage or network access. The
// captcha check fails closed. The phone-uniqueness rule is pre-checked for
// a friendly message and enforced again by the database's unique index.
func (s *RSVPService) Submit(ctx context.Context, in SubmitInput) SubmitResult {
	name := s.sanitizer.Text(in.Name, MaxGuestNameLength)
	phone := NormalizePhone(s.sanitizer.Phone(in.Phone))
	pax := sanitize.ClampInt(in.Pax, MinPax, MaxPax)
	token := strings.TrimSpace(in.CaptchaToken)

	// Sanitize-stage clamping is lenient; the schema below re-checks, so
	// a request that arrives with pax=50 is clamped, not rejected.
	if errs := validateSubmission(name, phone, pax, token); len(errs) > 0 {
		return SubmitResult{Success: false, Message: "Validation failed", Errors: errs, Reason: ReasonValidation}
	}

	ok, err := s.verifier.Verify(ctx, token)
	if err != nil {
		// Fail closed: an unreachable verifier rejects, never passes.
		s.logger.Warn("captcha verification error", slog.String("error", err.Error()))
	}
	if !ok {
		msg := "Captcha verification failed. Please try again."
		return SubmitResult{
			Success: false,
			Message: msg,
			Errors:  map[string][]string{"captchaToken": {msg}},
			Reason:  ReasonCaptcha,
		}
	}

	if _, err := s.rsvps.GetByPhone(ctx, phone); err == nil {
		return s.duplicatePhone()
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return s.internalError("checking existing rsvp", err)
	}

	resp := &model.RSVPResponse{
		ID:    xid.New().String(),
		Name:  name,
		Phone: phone,
		Pax:   pax,
	}
	if err := s.rsvps.Create(ctx, resp); err != nil {
		// Two guests racing the same number: the unique index caught
		// what the pre-check could not.
		if errors.Is(err, apperror.ErrConflict) {
			return s.duplicatePhone()
		}
		return s.internalError("inserting rsvp", err)
	}

	s.logger.Info("rsvp submitted",
		slog.String("id", resp.ID),
		slog.String("phone", resp.Phone),
		slog.Int("pax", resp.Pax),
	)

	return SubmitResult{
		Success:  true,
		Message:  "RSVP submitted successfully! Thank you for confirming your attendance.",
		Reason:   ReasonAccepted,
		Response: resp,
	}
}

// Overview is the aggregate the public page and the admin dashboard share.
type Overview struct {
	Responses []model.RSVPResponse `json:"responses"`
	Stats     model.RSVPStats      `json:"stats"`
}

// List returns all responses with their aggregate stats.
func (s *RSVPService) List(ctx context.Context) (*Overview, error) {
	responses, err := s.rsvps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/rsvp: listing responses: %w", err)
	}

	stats, err := s.rsvps.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/rsvp: aggregating stats: %w", err)
	}

	return &Overview{Responses: responses, Stats: stats}, nil
}

// NormalizePhone canonicalizes a Malaysian phone number to +60XXXXXXXXX.
//
// Everything except digits and + is dropped first, so "01X-XXX XXXX" and
// "01XXXXXXXX" normalize identically. Then:
//
//	+60...      → unchanged (never becomes +60+60...)
//	60...       → prefixed with +
//	0...        → the national 0 is replaced by +60
//	bare digits → prefixed with +60
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case cleaned == "":
		return ""
	case strings.HasPrefix(cleaned, "+60"):
		return cleaned
	case strings.HasPrefix(cleaned, "60"):
		return "+" + cleaned
	case strings.HasPrefix(cleaned, "0"):
		return "+60" + cleaned[1:]
	case strings.HasPrefix(cleaned, "+"):
		// Some other country code: leave it for validation to reject.
		return cleaned
	default:
		return "+60" + cleaned
	}
}

// validateSubmission checks the assembled record and returns field-keyed
// error messages, empty when valid.
func validateSubmission(name, phone string, pax int, token string) map[string][]string {
	errs := map[string][]string{}

	if name == "" {
		errs["name"] = append(errs["name"], "Name is required")
	}
	if phone == "" {
		errs["phone"] = append(errs["phone"], "Phone number is required")
	} else if !phonePattern.MatchString(strings.ReplaceAll(phone, "-", "")) {
		errs["phone"] = append(errs["phone"],
			"Please enter a valid Malaysian phone number (e.g., +60123456789)")
	}
	if pax < MinPax {
		errs["pax"] = append(errs["pax"], fmt.Sprintf("Number of guests must be at least %d", MinPax))
	}
	if pax > MaxPax {
		errs["pax"] = append(errs["pax"], fmt.Sprintf("Maximum %d guests allowed", MaxPax))
	}
	if token == "" {
		errs["captchaToken"] = append(errs["captchaToken"], "Please complete the captcha verification")
	}

	return errs
}

func (s *RSVPService) duplicatePhone() SubmitResult {
	msg := "This phone number has already been used for an RSVP."
	return SubmitResult{
		Success: false,
		Message: msg,
		Errors:  map[string][]string{"phone": {msg}},
		Reason:  ReasonDuplicate,
	}
}

func (s *RSVPService) internalError(what string, err error) SubmitResult {
	s.logger.Error("rsvp submission failed", slog.String("op", what), slog.String("error", err.Error()))
	msg := "An unexpected error occurred. Please try again."
	return SubmitResult{
		Success: false,
		Message: msg,
		Errors:  map[string][]string{"general": {msg}},
		Reason:  ReasonInternal,
	}
}
