// main.go
//
// Entry point for the word grid server: loads configuration, the word list
// and the level ladder, opens SQLite, and serves the HTTP API.

package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict, err := words.Open(cfg.WordsFile, cfg.MinWordLength)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.WordsFile).Msg("failed to load word list")
	}
	levels, err := game.LoadLevels(cfg.LevelsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.LevelsFile).Msg("failed to load levels")
	}
	log.Info().Int("words", dict.Len()).Int("levels", len(levels)).Msg("game data loaded")

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	srv := httpserver.New(httpserver.Deps{
		Config:     cfg,
		Store:      store.NewMemoryStore(),
		DB:         db,
		Dictionary: dict,
		Levels:     levels,
	})
	log.Info().Str("port", cfg.Port).Str("env", cfg.AppEnv).Msg("starting wordgrid server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
