package api

import (
	"net/http"

	"github.com/isaacjstriker/hangman/internal/auth"
)

// LoginRequest defines the shape of the login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse defines the shape of the successful login response
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// handleLogin checks credentials and issues a token
func (s *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	player, passwordHash, err := s.db.GetPlayerByUsername(r.Context(), req.Username)
	if err != nil {
		permissionDenied(w)
		return
	}

	if !auth.CheckPassword(req.Password, passwordHash) {
		permissionDenied(w)
		return
	}

	token, err := auth.IssueToken(s.config.JWTSecret, player.ID, player.Username, s.config.TokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to create token"})
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Username: player.Username,
	})
}
