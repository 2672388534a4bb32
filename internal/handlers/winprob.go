package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fantasybrain/roster-api/internal/models"
)

// CalculateWinProb handles POST /api/v1/matchups/{league}/winprob. The
// caller submits current category totals and remaining schedules; the
// response projects final totals and estimates the overall win
// probability.
func (h *Handler) CalculateWinProb(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "league")
	if leagueID == "" {
		h.errorResponse(w, http.StatusBadRequest, "League ID is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var in models.WinProbInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if len(in.Categories) == 0 {
		h.errorResponse(w, http.StatusBadRequest, "At least one category is required")
		return
	}

	projection := h.winProb.Calculate(in)
	h.logger.Debugw("Win probability calculated",
		"league", leagueID, "probability", projection.WinProbability)
	h.jsonResponse(w, http.StatusOK, projection)
}
