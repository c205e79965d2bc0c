package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/isaacjstriker/hangman/games"
	"github.com/isaacjstriker/hangman/internal/config"
	"github.com/isaacjstriker/hangman/internal/database"
)

// APIServer serves accounts, leaderboards and websocket play
type APIServer struct {
	listenAddr string
	db         *database.DB
	config     *config.Config
	registry   *games.GameRegistry
}

// NewAPIServer creates a new APIServer instance. db may be nil, in which
// case only websocket play is available and nothing is recorded.
func NewAPIServer(listenAddr string, db *database.DB, config *config.Config, registry *games.GameRegistry) *APIServer {
	return &APIServer{
		listenAddr: listenAddr,
		db:         db,
		config:     config,
		registry:   registry,
	}
}

// Routes builds the router
func (s *APIServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/api/games", s.handleListGames)

	r.Group(func(r chi.Router) {
		r.Use(s.requireDB)
		r.Post("/api/register", s.handleRegister)
		r.Post("/api/login", s.handleLogin)
		r.Get("/api/leaderboard/{variant}", s.handleGetLeaderboard)
		r.Get("/api/stats/{player}", s.handleGetPlayerStats)
	})

	r.Get("/ws/play/{variant}", s.handlePlay)

	return r
}

// Start runs the HTTP server until ctx is cancelled
func (s *APIServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listenAddr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.listenAddr).Msg("API server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("could not start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	log.Info().Msg("API server stopped")
	return nil
}

type gameInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
}

// handleListGames lists the playable variants
func (s *APIServer) handleListGames(w http.ResponseWriter, r *http.Request) {
	list := []gameInfo{}
	for _, game := range s.registry.GetAllGames() {
		list = append(list, gameInfo{
			Name:        game.GetName(),
			Description: game.GetDescription(),
			Difficulty:  game.GetDifficulty(),
		})
	}
	writeJSON(w, http.StatusOK, list)
}
