package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/hevy2notion/internal/syncer"
)

// Server exposes sync cycles over HTTP.
type Server struct {
	syncer *syncer.Syncer
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the routes open.
func New(s *syncer.Syncer, apiKey string, log *slog.Logger) *Server {
	srv := &Server{
		syncer: s,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	srv.routes()
	return srv
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))

	s.router.Get("/healthz", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Get("/update-notion", s.handleUpdateNotion)
		r.Get("/clear-last-workout-id", s.handleClearLastWorkoutID)
		r.Get("/api/v1/state", s.handleState)
		r.Get("/api/v1/preview", s.handlePreview)
	})
}
