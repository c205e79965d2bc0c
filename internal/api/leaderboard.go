package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const defaultLeaderboardLimit = 15

// handleGetLeaderboard handles requests for variant leaderboards
func (s *APIServer) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	if _, err := s.registry.GetGame(variant); err != nil {
		writeJSON(w, http.StatusNotFound, apiError{Error: "unknown variant"})
		return
	}

	// Get limit from query params, default to 15
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	entries, err := s.db.GetLeaderboard(r.Context(), variant, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to fetch leaderboard"})
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// handleGetPlayerStats returns persisted totals for a player
func (s *APIServer) handleGetPlayerStats(w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "player")

	stats, err := s.db.GetPlayerStats(r.Context(), player)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to fetch stats"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
