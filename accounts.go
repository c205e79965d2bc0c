package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/isaacjstriker/hangman/internal/auth"
	"github.com/isaacjstriker/hangman/internal/config"
)

// runAccount handles register, login, logout and whoami from the console.
func runAccount(ctx context.Context, cfg *config.Config, command string) error {
	session := auth.NewSessionManager(cfg.SessionFile)

	switch command {
	case "logout":
		return auth.NewCLIAuth(nil, session, os.Stdin, os.Stdout).Logout()
	case "whoami":
		auth.NewCLIAuth(nil, session, os.Stdin, os.Stdout).WhoAmI()
		return nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("DATABASE_URL is required for accounts")
	}
	defer db.Close()

	cli := auth.NewCLIAuth(db, session, os.Stdin, os.Stdout)
	if command == "register" {
		return cli.Register(ctx)
	}
	return cli.Login(ctx)
}

// runSeed fills an empty database with sample rounds.
func runSeed(ctx context.Context, cfg *config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("DATABASE_URL is required to seed sample data")
	}
	defer db.Close()

	added, err := db.CreateTestData(ctx)
	if err != nil {
		return err
	}
	if added == 0 {
		fmt.Println("Rounds already recorded, nothing to seed.")
		return nil
	}
	fmt.Printf("Created %d sample rounds.\n", added)
	return nil
}
