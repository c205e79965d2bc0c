package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName     string        `env:"APP_NAME" env-default:"Hangman"`
	LogLevel    string        `env:"LOG_LEVEL" env-default:"info"`
	Debug       bool          `env:"DEBUG" env-default:"false"`
	DatabaseURL string        `env:"DATABASE_URL"`
	WordsScript string        `env:"WORDS_SCRIPT"`
	PlayerName  string        `env:"PLAYER_NAME" env-default:"guest"`
	SessionFile string        `env:"SESSION_FILE" env-default:".hangman_session"`
	ServerHost  string        `env:"SERVER_HOST" env-default:"localhost"`
	ServerPort  int           `env:"SERVER_PORT" env-default:"8080"`
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"168h"`

	envFileLoaded bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	envErr := godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	cfg.envFileLoaded = envErr == nil

	return cfg, nil
}

// EnvFileLoaded reports whether a .env file was found.
func (c *Config) EnvFileLoaded() bool {
	return c.envFileLoaded
}

// Addr is the listen address for the API server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// EnsureJWTSecret fills in a random secret when none is configured and
// reports whether it had to. Tokens signed with a generated secret stop
// validating when the process restarts.
func (c *Config) EnsureJWTSecret() (bool, error) {
	if c.JWTSecret != "" {
		return false, nil
	}

	newKey := make([]byte, 32)
	if _, err := rand.Read(newKey); err != nil {
		return false, fmt.Errorf("failed to generate a new JWT key: %w", err)
	}
	c.JWTSecret = base64.StdEncoding.EncodeToString(newKey)
	return true, nil
}
