// Command swiftly prints the API and websocket URLs for the given paths and
// can probe a running collab backend through them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftly-editor/endpoints/internal/collab"
	"github.com/swiftly-editor/endpoints/internal/config"
	"github.com/swiftly-editor/endpoints/internal/endpoints"
	"github.com/swiftly-editor/endpoints/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	host := flag.String("host", cfg.Host, "Hostname for the websocket base (default $SWIFTLY_HOST, then localhost)")
	apiBase := flag.String("api-base", cfg.APIBase, "Prefix for API paths; empty keeps them relative")
	wsPort := flag.Int("ws-port", cfg.WSPort, "Port the websocket base points at")
	origin := flag.String("origin", cfg.Origin, "Origin relative API URLs resolve against when probing (default http://<host>:<ws-port>)")
	room := flag.String("room", "default", "Room to probe")
	probe := flag.Bool("probe", false, "Fetch the room's file tree and request its document state")
	timeout := flag.Duration("timeout", 5*time.Second, "Probe timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [path ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.Host = *host
	cfg.APIBase = *apiBase
	cfg.WSPort = *wsPort
	cfg.Origin = *origin

	log := logger.New(cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	name := cfg.Hostname()
	ep := cfg.Endpoints(name)
	log.Debug().Str("host", name).Str("api_base", ep.APIBase()).Str("ws_base", ep.WSBase()).Msg("Endpoints resolved")

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{""}
	}
	for _, p := range paths {
		fmt.Printf("api %s\nws  %s\n", ep.APIURL(p), ep.WSURL(p))
	}

	if !*probe {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := runProbe(ctx, ep, cfg.OriginFor(name), *room, log); err != nil {
		log.Fatal().Err(err).Str("room", *room).Msg("Probe failed")
	}
}

func runProbe(ctx context.Context, ep endpoints.Endpoints, origin, room string, log zerolog.Logger) error {
	api, err := collab.NewAPIClient(ep, origin, nil, log)
	if err != nil {
		return err
	}

	tree, err := api.FileTree(ctx, room)
	if err != nil {
		return fmt.Errorf("file tree: %w", err)
	}
	log.Info().Int("root_entries", len(tree)).Str("room", room).Msg("✅ API reachable")

	conn, err := collab.Dial(ctx, ep, room, log)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Info().Str("url", conn.URL()).Msg("✅ Sync socket connected")

	state, err := conn.RequestState(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Msg("⚠️  No document state received before timeout; the room may be empty")
		return nil
	}
	if err != nil {
		return err
	}
	log.Info().Int("state_bytes", len(state)).Msg("✅ Document state received")
	return nil
}
