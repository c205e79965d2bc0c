package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/isaacjstriker/hangman/games"
	"github.com/isaacjstriker/hangman/games/hangman"
	"github.com/isaacjstriker/hangman/internal/api"
	"github.com/isaacjstriker/hangman/internal/auth"
	"github.com/isaacjstriker/hangman/internal/config"
	"github.com/isaacjstriker/hangman/internal/database"
	"github.com/isaacjstriker/hangman/internal/logging"
	"github.com/isaacjstriker/hangman/internal/types"
	"github.com/isaacjstriker/hangman/ui"
)

const usage = `Usage: hangman [command]

Commands:
  play [variant]         play a variant, or choose one from a menu (default)
  <variant>              shorthand for play <variant>
  challenge              play every variant back to back
  serve                  run the HTTP and websocket API
  leaderboard [variant]  print the top players of a variant
  register | login       create or sign in to an account for recorded rounds
  logout                 forget the signed in account
  whoami                 show the signed in account
  seed                   add sample rounds to an empty database
  dbcheck                test the database connection`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	logging.Setup(os.Stderr, cfg.LogLevel, cfg.Debug)
	if !cfg.EnvFileLoaded() {
		log.Debug().Msg("no .env file found, reading from environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := games.NewDefaultRegistry(cfg.WordsScript)

	command := "play"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "play":
		err = runPlay(ctx, cfg, registry, args)
	case "challenge":
		err = runChallenge(ctx, cfg, registry)
	case "serve":
		err = runServe(ctx, cfg, registry)
	case "leaderboard":
		err = runLeaderboard(ctx, cfg, args)
	case "register", "login", "logout", "whoami":
		err = runAccount(ctx, cfg, command)
	case "seed":
		err = runSeed(ctx, cfg)
	case "dbcheck":
		err = checkDatabase(ctx, cfg)
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		if _, lookupErr := registry.GetGame(command); lookupErr == nil {
			err = runPlay(ctx, cfg, registry, []string{command})
			break
		}
		fmt.Fprintln(os.Stderr, "Unknown command:", command)
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	if err != nil {
		log.Error().Err(err).Str("command", command).Msg("command failed")
		return 1
	}
	return 0
}

// openDB connects to the configured database, or returns nil when none is set.
func openDB(cfg *config.Config) (*database.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := db.CreateTables(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info().Str("dialect", db.Dialect()).Msg("connected to database")
	return db, nil
}

func runPlay(ctx context.Context, cfg *config.Config, registry *games.GameRegistry, args []string) error {
	name, err := chooseVariant(cfg, registry, args)
	if err != nil {
		return err
	}
	if name == "exit" {
		return nil
	}

	game, err := registry.GetGame(name)
	if err != nil {
		return err
	}

	env, cleanup := consoleEnv(cfg)
	defer cleanup()

	result, err := game.Play(ctx, env)
	if err != nil {
		return err
	}
	log.Debug().
		Int("played", result.GamesPlayed).
		Int("won", result.GamesWon).
		Int("lost", result.GamesLost).
		Msg("session finished")
	return nil
}

func runChallenge(ctx context.Context, cfg *config.Config, registry *games.GameRegistry) error {
	env, cleanup := consoleEnv(cfg)
	defer cleanup()

	result, err := games.NewChallengeMode(registry).Run(ctx, env)
	if err != nil {
		return err
	}
	log.Debug().
		Int("variants", len(result.Results)).
		Int("played", result.GamesPlayed).
		Int("won", result.GamesWon).
		Msg("challenge finished")
	return nil
}

// consoleEnv wires the terminal, the signed in player and, when a database
// is configured, the round recorder.
func consoleEnv(cfg *config.Config) (types.Env, func()) {
	db, err := openDB(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("playing without saving rounds")
	}

	console := ui.NewConsole(os.Stdin, os.Stdout)
	session := auth.NewSessionManager(cfg.SessionFile)
	player := session.PlayerName(cfg.PlayerName)
	if session.IsLoggedIn() {
		log.Info().Str("player", player).Msg("recording rounds for the signed in account")
	}

	env := types.Env{Reader: console, Presenter: console, Player: player}
	if db != nil {
		env.Recorder = db
	}

	return env, func() {
		console.Close()
		if db != nil {
			db.Close()
		}
	}
}

// chooseVariant takes the variant from args, asks with the keyboard menu on
// a terminal, and otherwise falls back to the classic game.
func chooseVariant(cfg *config.Config, registry *games.GameRegistry, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return hangman.VariantClassic, nil
	}

	choice, err := variantMenu(cfg.AppName, registry).Show()
	if err != nil {
		log.Warn().Err(err).Msg("menu unavailable, starting the classic game")
		return hangman.VariantClassic, nil
	}
	return choice, nil
}

// variantMenu lists every registered variant under the app name, plus Quit.
func variantMenu(appName string, registry *games.GameRegistry) *ui.Menu {
	var items []ui.MenuItem
	for _, game := range registry.GetAllGames() {
		items = append(items, ui.MenuItem{
			Label: fmt.Sprintf("%s - %s", game.GetName(), game.GetDescription()),
			Value: game.GetName(),
		})
	}
	items = append(items, ui.MenuItem{Label: "Quit", Value: "exit"})

	return ui.NewMenu(appName+": choose a word list", items)
}

func runServe(ctx context.Context, cfg *config.Config, registry *games.GameRegistry) error {
	generated, err := cfg.EnsureJWTSecret()
	if err != nil {
		return err
	}
	if generated {
		log.Warn().Msg("JWT_SECRET is not set; using a generated secret, tokens will not survive a restart")
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	} else {
		log.Warn().Msg("DATABASE_URL is not set; accounts, stats and leaderboards are disabled")
	}

	return api.NewAPIServer(cfg.Addr(), db, cfg, registry).Start(ctx)
}

func runLeaderboard(ctx context.Context, cfg *config.Config, args []string) error {
	variant := hangman.VariantClassic
	if len(args) > 0 {
		variant = args[0]
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("DATABASE_URL is required for the leaderboard")
	}
	defer db.Close()

	entries, err := db.GetLeaderboard(ctx, variant, 15)
	if err != nil {
		return err
	}

	fmt.Printf("Leaderboard: %s\n", variant)
	if len(entries) == 0 {
		fmt.Println("No rounds recorded yet.")
		return nil
	}
	fmt.Printf("%-4s %-20s %6s %6s %6s\n", "#", "Player", "Won", "Played", "Rate")
	for i, entry := range entries {
		fmt.Printf("%-4d %-20s %6d %6d %5.0f%%\n", i+1, entry.Player, entry.GamesWon, entry.GamesPlayed, entry.WinRate*100)
	}
	return nil
}
