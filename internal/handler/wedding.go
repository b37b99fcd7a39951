package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mdhafiz/wedding-invite/internal/service"
)

// WeddingHandler serves the bilingual wedding details that drive the public
// invitation pages, and lets the admin edit them field by field.
type WeddingHandler struct {
	weddings *service.WeddingService
	logger   *slog.Logger
}

func NewWeddingHandler(weddings *service.WeddingService, logger *slog.Logger) *WeddingHandler {
	return &WeddingHandler{weddings: weddings, logger: logger}
}

// HandleGet returns the full wedding details record.
//
// HTTP: GET /api/wedding-details
// Auth: None — the public invitation pages read this.
func (h *WeddingHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	details, err := h.weddings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", details)
}

// HandleUpdate applies a partial update to the wedding details.
//
// HTTP: PUT /api/wedding-details
// Auth: Required (RequireAdmin middleware)
//
// PARTIAL UPDATES:
// The admin UI sends only the fields the user touched, as a flat JSON object
// of column name → value. The service filters that map against the known
// column allowlist and sanitizes every value, so a hostile payload can
// neither write to unexpected columns nor smuggle markup into the site.
func (h *WeddingHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.weddings.Update(r.Context(), fields); err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("wedding details updated", slog.Int("fields", len(fields)))
	writeSuccess(w, http.StatusOK, "Wedding details updated successfully", nil)
}
