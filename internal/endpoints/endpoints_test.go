package endpoints

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForHostScenarios(t *testing.T) {
	ep := ForHost("example.com")

	assert.Equal(t, "", ep.APIBase())
	assert.Equal(t, "ws://example.com:8000", ep.WSBase())

	assert.Equal(t, "/users", ep.APIURL("/users"))
	assert.Equal(t, "ws://example.com:8000/chat", ep.WSURL("/chat"))
	assert.Equal(t, "", ep.APIURL(""))
	assert.Equal(t, "ws://example.com:8000", ep.WSURL(""))
}

func TestURLsAreVerbatimConcatenation(t *testing.T) {
	ep := New("https://api.example.com/", "10.0.0.5", 9001)

	paths := []string{
		"",
		"/",
		"users",
		"//double",
		"/with space/?q=a b&x=%zz",
		"/ws/collab/room-1/",
		"ünïcode",
	}
	for _, p := range paths {
		assert.Equal(t, ep.APIBase()+p, ep.APIURL(p), "api path %q", p)
		assert.Equal(t, ep.WSBase()+p, ep.WSURL(p), "ws path %q", p)
	}
	assert.Equal(t, "https://api.example.com//users", ep.APIURL("/users"))
}

func TestWSBase(t *testing.T) {
	tests := []struct {
		hostname string
		port     int
		want     string
	}{
		{"example.com", DefaultWSPort, "ws://example.com:8000"},
		{"localhost", 8080, "ws://localhost:8080"},
		{"[::1]", DefaultWSPort, "ws://[::1]:8000"},
		{"", DefaultWSPort, "ws://:8000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WSBase(tt.hostname, tt.port))
	}
}

func TestHelpersAreIdempotent(t *testing.T) {
	ep := ForHost("example.com")

	assert.Equal(t, ep.APIURL("/files"), ep.APIURL("/files"))
	assert.Equal(t, ep.WSURL("/ws/collab/"), ep.WSURL("/ws/collab/"))
	assert.Equal(t, "ws://example.com:8000", ep.WSBase(), "base must not drift after calls")
}

func TestConcurrentReads(t *testing.T) {
	ep := ForHost("example.com")

	var wg sync.WaitGroup
	results := make([]string, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = ep.WSURL("/chat")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		require.Equal(t, "ws://example.com:8000/chat", r)
	}
}

func TestZeroValue(t *testing.T) {
	var ep Endpoints
	assert.Equal(t, "/users", ep.APIURL("/users"))
	assert.Equal(t, "/chat", ep.WSURL("/chat"))
}
