//go:build js && wasm

package hostname

import "syscall/js"

// Ambient returns the configured hostname, or the hostname of the page the
// module was loaded from. Runtimes without a location object (Workers) get
// localhost.
func Ambient(configured string) string {
	if configured != "" {
		return configured
	}
	loc := js.Global().Get("location")
	if loc.IsUndefined() || loc.IsNull() {
		return Fallback
	}
	name := loc.Get("hostname")
	if name.Type() != js.TypeString || name.String() == "" {
		return Fallback
	}
	return name.String()
}
