//go:build js && wasm

package main

import (
	"github.com/syumai/workers"

	"github.com/swiftly-editor/endpoints/internal/app"
	"github.com/swiftly-editor/endpoints/internal/config"
	"github.com/swiftly-editor/endpoints/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("production", "info")
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Workers handles the HTTP server setup; each request's Host names the
	// hostname unless SWIFTLY_HOST pins it.
	workers.Serve(app.NewServer(cfg, log))
}
