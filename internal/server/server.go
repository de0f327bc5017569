package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/swiftly-editor/endpoints/internal/config"
	"github.com/swiftly-editor/endpoints/internal/hostname"
)

// endpointsResponse is the body of GET /api/endpoints.
type endpointsResponse struct {
	APIBase string `json:"apiBase"`
	WSBase  string `json:"wsBase"`
	APIURL  *string `json:"apiUrl,omitempty"`
	WSURL   *string `json:"wsUrl,omitempty"`
}

// Server tells clients which bases to build their URLs on, computed for the
// host each request addressed.
type Server struct {
	cfg    *config.Config
	mux    *http.ServeMux
	logger zerolog.Logger
}

func New(logger zerolog.Logger, cfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		mux:    http.NewServeMux(),
		logger: logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/endpoints", s.endpointsHandler)
	s.mux.HandleFunc("/health", s.healthHandler)
	s.mux.HandleFunc("/", s.notFoundHandler)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.loggingMiddleware(s.mux).ServeHTTP(w, r)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Str("remote_addr", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("Finished request")
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func (s *Server) endpointsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	host := s.cfg.Host
	if host == "" {
		host = hostname.FromRequest(r)
	}
	ep := s.cfg.Endpoints(host)

	response := endpointsResponse{
		APIBase: ep.APIBase(),
		WSBase:  ep.WSBase(),
	}
	if q := r.URL.Query(); q.Has("path") {
		path := q.Get("path")
		apiURL, wsURL := ep.APIURL(path), ep.WSURL(path)
		response.APIURL = &apiURL
		response.WSURL = &wsURL
	}

	s.logger.Debug().
		Str("host", host).
		Str("ws_base", response.WSBase).
		Msg("Resolved endpoints")

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode endpoints response")
	}
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	s.logger.Warn().
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Str("remote_addr", r.RemoteAddr).
		Str("user_agent", r.UserAgent()).
		Msg("Unhandled route")
	http.NotFound(w, r)
}
