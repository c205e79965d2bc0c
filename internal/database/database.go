package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/isaacjstriker/hangman/internal/types"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("player already exists")
)

type DB struct {
	conn   *sql.DB
	dbType string // "postgres" or "sqlite3"
}

type Player struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayerStats are the persisted totals for one player.
type PlayerStats struct {
	Player      string `json:"player"`
	GamesPlayed int    `json:"games_played"`
	GamesWon    int    `json:"games_won"`
	GamesLost   int    `json:"games_lost"`
}

// LeaderboardEntry represents a single entry in the leaderboard
type LeaderboardEntry struct {
	Player      string  `json:"player"`
	Variant     string  `json:"variant"`
	GamesWon    int     `json:"games_won"`
	GamesPlayed int     `json:"games_played"`
	WinRate     float64 `json:"win_rate"`
}

// Connect opens the database named by dbURL. postgres:// and postgresql://
// URLs use PostgreSQL; sqlite://path, file: URIs, bare paths and :memory:
// use SQLite.
func Connect(dbURL string) (*DB, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	driverName, dsn := dialectFor(dbURL)

	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if driverName == dialectSQLite {
		// One connection keeps :memory: databases shared and writes serialized.
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec(`PRAGMA foreign_keys = ON; PRAGMA busy_timeout = 5000;`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set pragmas: %w", err)
		}
		if !strings.Contains(dsn, ":memory:") {
			if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
				conn.Close()
				return nil, fmt.Errorf("failed to enable WAL: %w", err)
			}
		}
	}

	if err = conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, dbType: driverName}, nil
}

func dialectFor(dbURL string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return dialectPostgres, dbURL
	case strings.HasPrefix(dbURL, "sqlite://"):
		return dialectSQLite, strings.TrimPrefix(dbURL, "sqlite://")
	default:
		return dialectSQLite, dbURL
	}
}

// Dialect returns "postgres" or "sqlite3".
func (db *DB) Dialect() string {
	return db.dbType
}

// CreateTables creates the necessary database tables
func (db *DB) CreateTables() error {
	var queries []string

	if db.dbType == dialectPostgres {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS players (
				id SERIAL PRIMARY KEY,
				username VARCHAR(50) UNIQUE NOT NULL,
				password_hash VARCHAR(255) NOT NULL,
				created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS rounds (
				id VARCHAR(36) PRIMARY KEY,
				player VARCHAR(50) NOT NULL,
				variant VARCHAR(50) NOT NULL,
				secret_word VARCHAR(100) NOT NULL,
				outcome VARCHAR(10) NOT NULL,
				wrong_guesses INTEGER NOT NULL,
				guesses JSONB,
				duration DOUBLE PRECISION NOT NULL DEFAULT 0,
				played_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player)`,
			`CREATE INDEX IF NOT EXISTS idx_rounds_variant ON rounds(variant, outcome)`,
		}
	} else {
		queries = []string{
			`CREATE TABLE IF NOT EXISTS players (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				password_hash TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE IF NOT EXISTS rounds (
				id TEXT PRIMARY KEY,
				player TEXT NOT NULL,
				variant TEXT NOT NULL,
				secret_word TEXT NOT NULL,
				outcome TEXT NOT NULL,
				wrong_guesses INTEGER NOT NULL,
				guesses TEXT,
				duration REAL NOT NULL DEFAULT 0,
				played_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX IF NOT EXISTS idx_rounds_player ON rounds(player)`,
			`CREATE INDEX IF NOT EXISTS idx_rounds_variant ON rounds(variant, outcome)`,
		}
	}

	for _, query := range queries {
		if _, err := db.conn.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	return nil
}

// rebind turns ? placeholders into $1..$n for PostgreSQL.
func (db *DB) rebind(query string) string {
	if db.dbType != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// QueryRow wrapper for convenience
func (db *DB) QueryRow(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.rebind(query), args...)
}

// ServerVersion reports the version string of the database server.
func (db *DB) ServerVersion(ctx context.Context) (string, error) {
	query := `SELECT sqlite_version()`
	if db.dbType == dialectPostgres {
		query = `SELECT version()`
	}

	var version string
	if err := db.conn.QueryRowContext(ctx, query).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query server version: %w", err)
	}
	return version, nil
}

// CreatePlayer creates a new player account
func (db *DB) CreatePlayer(ctx context.Context, username, passwordHash string) (*Player, error) {
	var id int64

	if db.dbType == dialectPostgres {
		err := db.conn.QueryRowContext(ctx,
			`INSERT INTO players (username, password_hash) VALUES ($1, $2) RETURNING id`,
			username, passwordHash,
		).Scan(&id)
		if err != nil {
			return nil, db.playerError(err)
		}
	} else {
		result, err := db.conn.ExecContext(ctx,
			`INSERT INTO players (username, password_hash) VALUES (?, ?)`,
			username, passwordHash,
		)
		if err != nil {
			return nil, db.playerError(err)
		}
		id, err = result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get player ID: %w", err)
		}
	}

	return &Player{
		ID:        id,
		Username:  username,
		CreatedAt: time.Now(),
	}, nil
}

func (db *DB) playerError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicatePlayer
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicatePlayer
	}
	return fmt.Errorf("failed to create player: %w", err)
}

// GetPlayerByUsername retrieves a player and their password hash
func (db *DB) GetPlayerByUsername(ctx context.Context, username string) (*Player, string, error) {
	query := `SELECT id, username, password_hash, created_at FROM players WHERE username = ?`

	var player Player
	var passwordHash string
	err := db.QueryRow(ctx, query, username).Scan(
		&player.ID, &player.Username, &passwordHash, &player.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrPlayerNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get player: %w", err)
	}

	return &player, passwordHash, nil
}

// SaveRound stores one finished round
func (db *DB) SaveRound(ctx context.Context, round types.RoundResult) error {
	guesses := round.WrongGuesses
	if guesses == nil {
		guesses = []string{}
	}
	guessesJSON, err := json.Marshal(guesses)
	if err != nil {
		return fmt.Errorf("failed to marshal guesses: %w", err)
	}

	var guessesValue interface{} = string(guessesJSON) // For SQLite
	if db.dbType == dialectPostgres {
		guessesValue = guessesJSON // For PostgreSQL JSONB
	}

	playedAt := round.FinishedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	query := `
		INSERT INTO rounds (id, player, variant, secret_word, outcome, wrong_guesses, guesses, duration, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.conn.ExecContext(ctx, db.rebind(query),
		round.ID, round.Player, round.Variant, round.Secret, string(round.Outcome),
		len(round.WrongGuesses), guessesValue, round.Duration.Seconds(), playedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}

// RecordRound lets the database act as the game's round recorder.
func (db *DB) RecordRound(ctx context.Context, round types.RoundResult) error {
	return db.SaveRound(ctx, round)
}

// GetPlayerStats returns persisted totals for a player. A player with no
// rounds has all-zero stats.
func (db *DB) GetPlayerStats(ctx context.Context, player string) (*PlayerStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0)
		FROM rounds
		WHERE player = ?
	`

	stats := PlayerStats{Player: player}
	err := db.QueryRow(ctx, query, player).Scan(&stats.GamesPlayed, &stats.GamesWon, &stats.GamesLost)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}
	return &stats, nil
}

// GetLeaderboard ranks players of a variant by wins, then by fewest rounds.
func (db *DB) GetLeaderboard(ctx context.Context, variant string, limit int) ([]LeaderboardEntry, error) {
	query := `
		SELECT
			player,
			SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END) AS games_won,
			COUNT(*) AS games_played
		FROM rounds
		WHERE variant = ?
		GROUP BY player
		ORDER BY games_won DESC, games_played ASC, player ASC
		LIMIT ?
	`

	rows, err := db.conn.QueryContext(ctx, db.rebind(query), variant, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		entry := LeaderboardEntry{Variant: variant}
		if err := rows.Scan(&entry.Player, &entry.GamesWon, &entry.GamesPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		if entry.GamesPlayed > 0 {
			entry.WinRate = float64(entry.GamesWon) / float64(entry.GamesPlayed)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	return entries, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}
