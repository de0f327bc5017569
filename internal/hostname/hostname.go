// Package hostname resolves the host a client is addressing. Browser builds
// read it from the page location; everything else takes it from
// configuration or from the incoming request.
package hostname

import (
	"net/http"
	"net/url"
	"strings"
)

// Fallback is used when neither configuration nor the runtime names a host.
const Fallback = "localhost"

// FromHost extracts the hostname from an HTTP Host value, dropping any port.
// IPv6 literals keep their brackets, matching location.hostname in browsers.
func FromHost(host string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return ""
	}
	name := strings.ToLower((&url.URL{Host: host}).Hostname())
	if strings.Contains(name, ":") {
		return "[" + name + "]"
	}
	return name
}

// FromRequest returns the hostname the client used to reach r. The first
// X-Forwarded-Host entry wins over r.Host so proxied requests keep the
// public name; entries that are not a bare host[:port] are ignored.
func FromRequest(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		first = strings.TrimSpace(first)
		if Valid(first) {
			if name := FromHost(first); name != "" {
				return name
			}
		}
	}
	return FromHost(r.Host)
}

// Valid reports whether host can be placed in a URL authority as is.
func Valid(host string) bool {
	return host != "" && !strings.ContainsAny(host, "/\\ ?#@\t\r\n")
}
