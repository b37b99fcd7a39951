package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mdhafiz/wedding-invite/internal/service"
)

// RSVPHandler accepts guest RSVP submissions and exposes the aggregated
// guest list for both the public thank-you view and the admin dashboard.
type RSVPHandler struct {
	rsvps  *service.RSVPService
	logger *slog.Logger
}

func NewRSVPHandler(rsvps *service.RSVPService, logger *slog.Logger) *RSVPHandler {
	return &RSVPHandler{rsvps: rsvps, logger: logger}
}

// submitRequest is the RSVP form payload.
type submitRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Pax          int    `json:"pax"`
	CaptchaToken string `json:"captchaToken"`
}

// HandleSubmit runs the full RSVP pipeline: sanitize, normalize the phone
// number, validate, verify the captcha, and insert.
//
// HTTP: POST /api/rsvp
// Auth: None — guests submit this from the public invitation page.
//
// STATUS CODES FROM OUTCOMES:
// The service returns a structured result rather than an error, because a
// rejected RSVP is an expected outcome, not a failure of the service. The
// handler maps the outcome reason onto HTTP:
//   - accepted            → 200
//   - validation, captcha → 400
//   - duplicate phone     → 409
//   - storage failure     → 500
//
// The body is the result itself ({success, message, errors?}), which the
// form renders directly.
func (h *RSVPHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result := h.rsvps.Submit(r.Context(), service.SubmitInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Pax:          req.Pax,
		CaptchaToken: req.CaptchaToken,
	})

	status := http.StatusOK
	switch result.Reason {
	case service.ReasonValidation, service.ReasonCaptcha:
		status = http.StatusBadRequest
	case service.ReasonDuplicate:
		status = http.StatusConflict
	case service.ReasonInternal:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, result)
}

// HandleList returns every RSVP response plus the aggregate guest count.
//
// HTTP: GET /api/rsvp (public) and GET /api/admin/rsvp (admin)
//
// Both routes share this handler: the invitation page shows the guest list
// openly, and the admin dashboard reads the same aggregate behind its
// session check.
func (h *RSVPHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	overview, err := h.rsvps.List(r.Context())
	if err != nil {
		h.logger.Error("listing RSVP responses failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", overview)
}
