//go:build !js || !wasm

package collab

func supportsWebSocketSync() bool {
	return true
}
