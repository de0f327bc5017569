//go:build js && wasm

// Command swiftly-web is loaded by the editor frontend. It computes the URL
// bases once from the page location and publishes them on globalThis.swiftly.
package main

import (
	"syscall/js"

	"github.com/swiftly-editor/endpoints/internal/config"
	"github.com/swiftly-editor/endpoints/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("development", "info")
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	ep := cfg.Endpoints(cfg.Hostname())

	exports := js.Global().Get("Object").New()
	exports.Set("API_BASE", ep.APIBase())
	exports.Set("WS_BASE", ep.WSBase())
	exports.Set("apiUrl", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return ep.APIURL(pathArg(args))
	}))
	exports.Set("wsUrl", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return ep.WSURL(pathArg(args))
	}))
	js.Global().Set("swiftly", exports)

	log.Info().Str("api_base", ep.APIBase()).Str("ws_base", ep.WSBase()).Msg("URL helpers ready")

	select {}
}

// pathArg coerces the first argument the way a JS template literal would.
// A missing argument is treated as the empty path.
func pathArg(args []js.Value) string {
	if len(args) == 0 {
		return ""
	}
	return js.Global().Get("String").Invoke(args[0]).String()
}
