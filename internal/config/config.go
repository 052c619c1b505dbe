// Package config loads server configuration from the environment.
//
// A .env file in the working directory is read first (development only;
// real environment variables win), then the Config struct is populated
// from env tags with defaults.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full server configuration.
type Config struct {
	Port     string `env:"PORT" envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	DBPath   string `env:"DB_PATH" envDefault:"./data/wordgrid.db"`

	WordsFile     string `env:"WORDS_FILE"`
	LevelsFile    string `env:"LEVELS_FILE"`
	MinWordLength int    `env:"MIN_WORD_LENGTH" envDefault:"3"`

	Rows         int           `env:"GRID_ROWS" envDefault:"8"`
	Cols         int           `env:"GRID_COLS" envDefault:"8"`
	TileSpacing  float64       `env:"TILE_SPACING" envDefault:"1.1"`
	ClearDelay   time.Duration `env:"CLEAR_DELAY" envDefault:"600ms"`
	AdvanceDelay time.Duration `env:"ADVANCE_DELAY" envDefault:"1500ms"`

	// Live sessions are dropped from memory FINISHED_TTL after they end, or
	// after IDLE_TTL without a request. Zero keeps them.
	FinishedTTL time.Duration `env:"FINISHED_TTL" envDefault:"2m"`
	IdleTTL     time.Duration `env:"IDLE_TTL" envDefault:"30m"`

	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"wordgrid_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	DailySalt      string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
}

// Production reports whether cookies should be marked Secure/SameSite=None.
func (c Config) Production() bool { return c.AppEnv == "production" }

// Load reads .env (if present) and parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse populates a Config from the current environment and validates it.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the game cannot start with.
func (c Config) Validate() error {
	var errs []error
	if c.Rows <= 0 || c.Cols <= 0 {
		errs = append(errs, fmt.Errorf("grid dimensions must be positive (got %dx%d)", c.Rows, c.Cols))
	}
	if c.TileSpacing <= 0 {
		errs = append(errs, errors.New("TILE_SPACING must be positive"))
	}
	if c.ClearDelay < 0 || c.AdvanceDelay < 0 {
		errs = append(errs, errors.New("delays must not be negative"))
	}
	if c.FinishedTTL < 0 || c.IdleTTL < 0 {
		errs = append(errs, errors.New("FINISHED_TTL and IDLE_TTL must not be negative"))
	}
	return errors.Join(errs...)
}
