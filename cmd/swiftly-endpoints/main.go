package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/swiftly-editor/endpoints/internal/app"
	"github.com/swiftly-editor/endpoints/internal/config"
	"github.com/swiftly-editor/endpoints/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	srv := app.NewServer(cfg, log)

	log.Info().Str("port", cfg.ListenPort).Msg("Starting server")
	log.Fatal().Err(http.ListenAndServe(cfg.Addr(), srv)).Msg("Server failed to start")
}
