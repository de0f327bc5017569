// Package config loads the endpoint settings from the environment, an
// optional .env in the working directory, and the user's XDG config file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/swiftly-editor/endpoints/internal/endpoints"
	"github.com/swiftly-editor/endpoints/internal/hostname"
	"github.com/swiftly-editor/endpoints/internal/logger"
)

const defaultListenPort = "9880"

type Config struct {
	Env        string // ENV
	LogLevel   string // LOG_LEVEL
	Host       string // SWIFTLY_HOST, empty means ambient lookup
	APIBase    string // SWIFTLY_API_BASE
	WSPort     int    // SWIFTLY_WS_PORT
	Origin     string // SWIFTLY_ORIGIN, used to resolve relative API URLs outside a browser
	ListenPort string // PORT
}

// Load reads configuration. Variables already present in the process
// environment take precedence over both env files, and ./.env takes
// precedence over the XDG file.
func Load() (*Config, error) {
	if err := loadEnvFiles(".env", DefaultEnvPath()); err != nil {
		return nil, err
	}

	wsPort := endpoints.DefaultWSPort
	if raw := strings.TrimSpace(os.Getenv("SWIFTLY_WS_PORT")); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("config: SWIFTLY_WS_PORT %q is not a number: %w", raw, err)
		}
		wsPort = p
	}

	env := getEnv("ENV", "development")
	defaultLevel := "info"
	if logger.IsDevelopment(env) {
		defaultLevel = "debug"
	}

	return &Config{
		Env:        env,
		LogLevel:   getEnv("LOG_LEVEL", defaultLevel),
		Host:       strings.TrimSpace(os.Getenv("SWIFTLY_HOST")),
		APIBase:    strings.TrimSpace(os.Getenv("SWIFTLY_API_BASE")),
		WSPort:     wsPort,
		Origin:     strings.TrimSpace(os.Getenv("SWIFTLY_ORIGIN")),
		ListenPort: getEnv("PORT", defaultListenPort),
	}, nil
}

// Validate checks ranges and URL shapes.
func (c *Config) Validate() error {
	if c.WSPort < 1 || c.WSPort > 65535 {
		return fmt.Errorf("config: SWIFTLY_WS_PORT %d out of range", c.WSPort)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: LOG_LEVEL: %w", err)
	}
	if c.APIBase != "" && !strings.HasPrefix(c.APIBase, "/") {
		if err := checkHTTPURL(c.APIBase); err != nil {
			return fmt.Errorf("config: SWIFTLY_API_BASE: %w", err)
		}
	}
	if c.Origin != "" {
		if err := checkHTTPURL(c.Origin); err != nil {
			return fmt.Errorf("config: SWIFTLY_ORIGIN: %w", err)
		}
	}
	if c.Host != "" && !hostname.Valid(c.Host) {
		return fmt.Errorf("config: SWIFTLY_HOST %q is not a hostname", c.Host)
	}
	return nil
}

// Hostname returns the configured host, or the ambient one when unset.
func (c *Config) Hostname() string {
	return hostname.Ambient(c.Host)
}

// Endpoints builds the URL bases for hostname.
func (c *Config) Endpoints(hostname string) endpoints.Endpoints {
	return endpoints.New(c.APIBase, hostname, c.WSPort)
}

// OriginFor returns the configured origin, or http://<hostname>:<ws port>
// where the backend serves both the API and the websocket routes.
func (c *Config) OriginFor(hostname string) string {
	if c.Origin != "" {
		return c.Origin
	}
	return fmt.Sprintf("http://%s:%d", hostname, c.WSPort)
}

func (c *Config) Addr() string {
	return ":" + c.ListenPort
}

func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if p == "" || !FileExists(p) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: failed to load %s: %w", p, err)
		}
	}
	return nil
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
