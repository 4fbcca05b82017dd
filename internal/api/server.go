// Package api serves the link helpers over HTTP: helper discovery, link
// construction, conversions, saved sessions and sky charts.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/banshee-data/skylink/internal/db"
	"github.com/banshee-data/skylink/internal/monitoring"
	"github.com/banshee-data/skylink/internal/plugin"
)

// ANSI escape codes for request logs
const (
	colorCyan      = "\033[36m"
	colorReset     = "\033[0m"
	colorYellow    = "\033[33m"
	colorBoldGreen = "\033[1;32m"
	colorBoldRed   = "\033[1;31m"
)

// Server exposes a plugin registry and, optionally, a session store.
type Server struct {
	registry *plugin.Registry
	sessions *db.SessionStore
}

// NewServer creates a Server. sessions may be nil, in which case the
// session routes are not mounted.
func NewServer(registry *plugin.Registry, sessions *db.SessionStore) *Server {
	return &Server{registry: registry, sessions: sessions}
}

// ServeMux returns a mux with all API routes registered.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	s.Attach(mux)
	return mux
}

// Attach registers the API routes on mux.
func (s *Server) Attach(mux *http.ServeMux) {
	mux.HandleFunc("/api/helpers", s.handleHelpers)
	mux.HandleFunc("/api/plugins", s.handlePlugins)
	mux.HandleFunc("/api/links", s.handleLinks)
	mux.HandleFunc("/api/convert", s.handleConvert)
	mux.HandleFunc("/charts/sky", s.handleSkyChart)
	if s.sessions != nil {
		mux.HandleFunc("/api/sessions", s.handleSessions)
		mux.HandleFunc("/api/sessions/", s.handleSession)
	}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
