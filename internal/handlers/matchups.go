package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fantasybrain/roster-api/internal/models"
)

// RecordMatchupResult handles POST /api/v1/matchups/{league}. It upserts
// one completed head-to-head week so future strategy and insight queries
// can see it. Re-submitting the same week overwrites the previous row.
func (h *Handler) RecordMatchupResult(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "league")
	if leagueID == "" {
		h.errorResponse(w, http.StatusBadRequest, "League ID is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var rec models.MatchupRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	rec.LeagueID = leagueID

	if rec.Week <= 0 || rec.Season <= 0 {
		h.errorResponse(w, http.StatusBadRequest, "Week and season are required")
		return
	}

	if err := h.history.SaveMatchupResult(r.Context(), rec); err != nil {
		h.logger.Errorw("Failed to save matchup result",
			"error", err, "league", leagueID, "week", rec.Week)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to save matchup result")
		return
	}

	h.jsonResponse(w, http.StatusCreated, map[string]string{"status": "saved"})
}
