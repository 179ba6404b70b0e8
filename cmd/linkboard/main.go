package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	adapthttp "linkboard/internal/adapter/http"
	"linkboard/internal/adapter/jsonfile"
	"linkboard/internal/app"
	"linkboard/internal/config"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Optional .env overlay; the environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	store := jsonfile.New(cfg.DataDir)
	if err := store.Initialize(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("initialize document")
	}
	log.Info().Str("document", store.Path()).Msg("document ready")

	authSvc := app.NewAuthService(store, store, store)
	linkSvc := app.NewLinkService(store)
	prefSvc := app.NewPreferenceService(store)

	h := adapthttp.New(authSvc, linkSvc, prefSvc, cfg.WebDir, log).Handler()
	log.Info().Str("addr", cfg.Addr).Msg("listening")
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
