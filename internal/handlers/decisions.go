package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fantasybrain/roster-api/internal/logic"
	"github.com/fantasybrain/roster-api/internal/models"
)

// RecordChoice handles POST /api/v1/decisions/{id}/choice. It stamps the
// user's accept/reject verdict onto a stored decision so the outcome
// labeler and the suppression filter can learn from it.
func (h *Handler) RecordChoice(w http.ResponseWriter, r *http.Request) {
	decisionID := chi.URLParam(r, "id")
	if decisionID == "" {
		h.errorResponse(w, http.StatusBadRequest, "Decision ID is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var req models.ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid choice: "+err.Error())
		return
	}

	if err := h.history.RecordUserChoice(r.Context(), decisionID, req.Choice, req.Feedback); err != nil {
		if errors.Is(err, logic.ErrDecisionNotFound) {
			h.errorResponse(w, http.StatusNotFound, "Decision not found")
			return
		}
		h.logger.Errorw("Failed to record user choice", "error", err, "decisionID", decisionID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to record choice")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "recorded"})
}
