package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetInsights handles GET /api/v1/insights/{league}. It summarizes how
// past recommendations in this league actually turned out.
func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "league")
	if leagueID == "" {
		h.errorResponse(w, http.StatusBadRequest, "League ID is required")
		return
	}

	insights, err := h.history.Insights(r.Context(), leagueID)
	if err != nil {
		h.logger.Errorw("Failed to get insights", "error", err, "league", leagueID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get insights")
		return
	}

	h.jsonResponse(w, http.StatusOK, insights)
}

// GetSimilarMatchups handles GET /api/v1/insights/{league}/similar.
// The opponent query parameter narrows results to past weeks against
// the same team.
func (h *Handler) GetSimilarMatchups(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "league")
	if leagueID == "" {
		h.errorResponse(w, http.StatusBadRequest, "League ID is required")
		return
	}

	opponent := r.URL.Query().Get("opponent")
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	matchups, err := h.history.SimilarMatchups(r.Context(), leagueID, opponent, limit)
	if err != nil {
		h.logger.Errorw("Failed to get similar matchups", "error", err, "league", leagueID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get similar matchups")
		return
	}

	h.jsonResponse(w, http.StatusOK, matchups)
}

// GetPerformance handles GET /api/v1/insights/{league}/performance.
func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "league")
	if leagueID == "" {
		h.errorResponse(w, http.StatusBadRequest, "League ID is required")
		return
	}

	weeks := 10
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 52 {
			weeks = n
		}
	}

	summary, err := h.history.PerformanceSummary(r.Context(), leagueID, weeks)
	if err != nil {
		h.logger.Errorw("Failed to get performance summary", "error", err, "league", leagueID)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to get performance summary")
		return
	}

	h.jsonResponse(w, http.StatusOK, summary)
}
