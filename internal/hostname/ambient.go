//go:build !js || !wasm

package hostname

// Ambient returns the configured hostname. Native processes have no page
// location to read from, so an empty value falls back to localhost.
func Ambient(configured string) string {
	if configured != "" {
		return configured
	}
	return Fallback
}
