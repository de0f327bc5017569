package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"ENV", "LOG_LEVEL", "SWIFTLY_HOST", "SWIFTLY_API_BASE",
	"SWIFTLY_WS_PORT", "SWIFTLY_ORIGIN", "PORT",
}

// isolate runs the test from an empty directory with no config variables set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range configKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "", cfg.Host)
	assert.Equal(t, "", cfg.APIBase)
	assert.Equal(t, 8000, cfg.WSPort)
	assert.Equal(t, "9880", cfg.ListenPort)
	assert.Equal(t, ":9880", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("ENV", "production")
	t.Setenv("SWIFTLY_HOST", "editor.example.com")
	t.Setenv("SWIFTLY_API_BASE", "https://api.example.com")
	t.Setenv("SWIFTLY_WS_PORT", "9000")
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "editor.example.com", cfg.Hostname())

	ep := cfg.Endpoints(cfg.Hostname())
	assert.Equal(t, "https://api.example.com/api/files/", ep.APIURL("/api/files/"))
	assert.Equal(t, "ws://editor.example.com:9000/ws/collab/", ep.WSURL("/ws/collab/"))
}

func TestLoadInvalidPort(t *testing.T) {
	isolate(t)
	t.Setenv("SWIFTLY_WS_PORT", "eight-thousand")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SWIFTLY_WS_PORT")
}

func TestLoadEnvFilePrecedence(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SWIFTLY_HOST=from-dotenv\nSWIFTLY_WS_PORT=8100\n"), 0600))

	xdgPath := DefaultEnvPath()
	require.NoError(t, EnsureParentDir(xdgPath))
	require.NoError(t, os.WriteFile(xdgPath,
		[]byte("SWIFTLY_HOST=from-xdg\nSWIFTLY_API_BASE=/proxy\nLOG_LEVEL=warn\n"), 0600))

	t.Setenv("LOG_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Host, ".env wins over the XDG file")
	assert.Equal(t, 8100, cfg.WSPort)
	assert.Equal(t, "/proxy", cfg.APIBase, "XDG file fills what .env leaves unset")
	assert.Equal(t, "error", cfg.LogLevel, "process env wins over files")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Env: "development", LogLevel: "info", WSPort: 8000, ListenPort: "9880"}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"relative api base", func(c *Config) { c.APIBase = "/api-prefix" }, ""},
		{"absolute api base", func(c *Config) { c.APIBase = "http://localhost:8000" }, ""},
		{"port zero", func(c *Config) { c.WSPort = 0 }, "out of range"},
		{"port too large", func(c *Config) { c.WSPort = 70000 }, "out of range"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"api base scheme", func(c *Config) { c.APIBase = "ftp://files" }, "SWIFTLY_API_BASE"},
		{"api base without scheme", func(c *Config) { c.APIBase = "api.example.com" }, "SWIFTLY_API_BASE"},
		{"origin without host", func(c *Config) { c.Origin = "http://" }, "SWIFTLY_ORIGIN"},
		{"host with path", func(c *Config) { c.Host = "example.com/app" }, "SWIFTLY_HOST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOriginFor(t *testing.T) {
	c := &Config{WSPort: 8000}
	assert.Equal(t, "http://example.com:8000", c.OriginFor("example.com"))

	c.Origin = "https://editor.example.com"
	assert.Equal(t, "https://editor.example.com", c.OriginFor("example.com"))
}
