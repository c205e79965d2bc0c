package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/isaacjstriker/hangman/internal/config"
	"github.com/isaacjstriker/hangman/internal/database"
)

// checkDatabase connects to DATABASE_URL and reports what it found.
func checkDatabase(ctx context.Context, cfg *config.Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}

	fmt.Println("Testing database connection...")

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer db.Close()

	version, err := db.ServerVersion(ctx)
	if err != nil {
		return err
	}
	if len(version) > 50 {
		version = version[:50] + "..."
	}

	fmt.Printf("Connected to %s database.\n", db.Dialect())
	fmt.Printf("Server version: %s\n", version)

	if err := db.CreateTables(); err != nil {
		return fmt.Errorf("tables are not usable: %w", err)
	}
	stats, err := db.GetPlayerStats(ctx, cfg.PlayerName)
	if err != nil {
		return err
	}
	fmt.Printf("Rounds recorded for %s: %d\n", stats.Player, stats.GamesPlayed)
	return nil
}
