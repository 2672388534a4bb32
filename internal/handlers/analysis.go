package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fantasybrain/roster-api/internal/models"
)

// Analyze handles POST /api/v1/analyze. It runs a full recommendation
// pass over the submitted roster snapshot and returns ranked moves,
// lineup changes and the strategic context they were derived under.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid analysis request: "+err.Error())
		return
	}

	resp, err := h.recommendations.GetDailyRecommendations(r.Context(), req)
	if err != nil {
		h.logger.Errorw("Failed to generate recommendations",
			"error", err, "league", req.Snapshot.LeagueID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to generate recommendations")
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}
