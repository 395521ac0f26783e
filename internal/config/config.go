package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFile receives log output. Empty discards logs so the terminal UI stays clean.
	LogFile string `env:"LOG_FILE"`

	// WorldFile is a JSON world definition. When empty, WorldDir is offered as a
	// menu, and with neither set the bundled castle is played.
	WorldFile  string `env:"WORLD_FILE"`
	WorldDir   string `env:"WORLD_DIR"`
	PlayerName string `env:"PLAYER_NAME"`
	Seed       uint64 `env:"SEED" envDefault:"0"`

	// RedisURL enables the turn journal when set.
	RedisURL          string `env:"REDIS_URL"`
	JournalMaxEntries int64  `env:"JOURNAL_MAX_ENTRIES" envDefault:"500"`
}

// Load reads a .env file if one exists, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse fills a Config from the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JournalMaxEntries < 1 {
		return nil, fmt.Errorf("JOURNAL_MAX_ENTRIES must be positive, got %d", cfg.JournalMaxEntries)
	}
	return &cfg, nil
}

// Level returns the slog level named by LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

// ResolveSeed returns the configured seed, or a fresh one from crypto/rand when unset.
func (c *Config) ResolveSeed() (uint64, error) {
	if c.Seed != 0 {
		return c.Seed, nil
	}
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
