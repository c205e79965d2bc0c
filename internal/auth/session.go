package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Session represents a logged in console player
type Session struct {
	PlayerID   int64     `json:"player_id"`
	Username   string    `json:"username"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// SessionManager keeps the console session in a small JSON file so that
// later runs record rounds under the same player.
type SessionManager struct {
	sessionFile string
	current     *Session
}

// NewSessionManager creates a session manager backed by path and loads any
// session already saved there.
func NewSessionManager(path string) *SessionManager {
	sm := &SessionManager{sessionFile: path}
	if err := sm.LoadSession(); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("no previous session loaded")
	}
	return sm
}

// SaveSession saves the current session to disk
func (sm *SessionManager) SaveSession(playerID int64, username string) error {
	session := &Session{
		PlayerID:   playerID,
		Username:   username,
		LoggedInAt: time.Now().UTC(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(sm.sessionFile, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	sm.current = session
	return nil
}

// LoadSession loads a session from disk. A missing file is not an error.
func (sm *SessionManager) LoadSession() error {
	data, err := os.ReadFile(sm.sessionFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.Username == "" {
		return fmt.Errorf("session file has no username")
	}

	sm.current = &session
	return nil
}

// GetCurrentSession returns the current session data
func (sm *SessionManager) GetCurrentSession() *Session {
	return sm.current
}

// IsLoggedIn returns true if a player is currently logged in
func (sm *SessionManager) IsLoggedIn() bool {
	return sm.current != nil
}

// PlayerName returns the logged in username, or fallback.
func (sm *SessionManager) PlayerName(fallback string) string {
	if sm.current == nil {
		return fallback
	}
	return sm.current.Username
}

// ClearSession clears the current session
func (sm *SessionManager) ClearSession() error {
	sm.current = nil

	if err := os.Remove(sm.sessionFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// GetUserInfo returns formatted player information
func (sm *SessionManager) GetUserInfo() string {
	if sm.current == nil {
		return "Not logged in"
	}
	return fmt.Sprintf("Logged in as: %s", sm.current.Username)
}
