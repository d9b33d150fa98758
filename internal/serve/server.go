// Package serve publishes a scan output directory over HTTP, exposing the
// same two artifact endpoints the dashboard consumes. It exists for local
// preview of a freshly generated scan; production artifacts are published by
// the pipeline's own hosting.
package serve

import (
	"log/slog"
	"net/http"
	"path/filepath"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// tickerRe matches the symbols the scan pipeline emits.
var tickerRe = regexp.MustCompile(`^[A-Z0-9.\-]{1,10}$`)

// Server serves static scan artifacts from a directory.
type Server struct {
	publicDir string
	log       *slog.Logger
}

// NewServer creates a Server over the given scan output directory.
func NewServer(publicDir string, log *slog.Logger) *Server {
	return &Server{publicDir: publicDir, log: log}
}

// Handler returns the HTTP handler with routing and middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/top_picks.json", s.handleSummary)
	r.Get("/data/{ticker}.json", s.handleDetail)

	return r
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, filepath.Join(s.publicDir, "top_picks.json"))
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	if !tickerRe.MatchString(ticker) {
		s.log.Warn("rejecting detail request", "ticker", ticker)
		http.NotFound(w, r)
		return
	}
	s.serveArtifact(w, r, filepath.Join(s.publicDir, "data", ticker+".json"))
}

// serveArtifact sends one artifact file with caching disabled, so clients
// always observe the latest scan output.
func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, path)
}
