package app

import (
	"github.com/rs/zerolog"

	"github.com/swiftly-editor/endpoints/internal/config"
	"github.com/swiftly-editor/endpoints/internal/server"
)

// NewServer creates the endpoint discovery server shared by the native and
// Workers binaries.
func NewServer(cfg *config.Config, logger zerolog.Logger) *server.Server {
	logger.Info().
		Str("api_base", cfg.APIBase).
		Int("ws_port", cfg.WSPort).
		Str("host_override", cfg.Host).
		Msg("Serving endpoint discovery")
	return server.New(logger, cfg)
}
