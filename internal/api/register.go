package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/isaacjstriker/hangman/internal/auth"
	"github.com/isaacjstriker/hangman/internal/database"
)

// RegisterRequest defines the shape of the registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleRegister handles new player registration
func (s *APIServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := readJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	if err := auth.ValidateUsername(req.Username); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to hash password"})
		return
	}

	player, err := s.db.CreatePlayer(r.Context(), req.Username, hashedPassword)
	if errors.Is(err, database.ErrDuplicatePlayer) {
		writeJSON(w, http.StatusConflict, apiError{Error: "username already exists"})
		return
	}
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("error creating player")
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to create player"})
		return
	}

	writeJSON(w, http.StatusCreated, player)
}
