package endpoints

import "fmt"

const (
	// DefaultAPIBase is empty so API calls stay same-origin relative paths
	// and the reverse proxy in front of the frontend routes them.
	DefaultAPIBase = ""
	// DefaultWSPort is the backend port websocket connections dial directly.
	DefaultWSPort = 8000
)

// Endpoints holds the API and websocket bases. The zero value builds
// paths unchanged for both helpers.
type Endpoints struct {
	apiBase string
	wsBase  string
}

// New computes both bases once for the given hostname and websocket port.
func New(apiBase, hostname string, wsPort int) Endpoints {
	return Endpoints{
		apiBase: apiBase,
		wsBase:  WSBase(hostname, wsPort),
	}
}

// ForHost returns the default configuration for hostname.
func ForHost(hostname string) Endpoints {
	return New(DefaultAPIBase, hostname, DefaultWSPort)
}

// WSBase formats the websocket base as ws://<hostname>:<port>.
func WSBase(hostname string, port int) string {
	return fmt.Sprintf("ws://%s:%d", hostname, port)
}

func (e Endpoints) APIBase() string {
	return e.apiBase
}

func (e Endpoints) WSBase() string {
	return e.wsBase
}

// APIURL prepends the API base to path verbatim.
func (e Endpoints) APIURL(path string) string {
	return e.apiBase + path
}

// WSURL prepends the websocket base to path verbatim.
func (e Endpoints) WSURL(path string) string {
	return e.wsBase + path
}
