package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dgallion1/vidnotes/internal/config"
	"github.com/dgallion1/vidnotes/internal/stats"
	"github.com/dgallion1/vidnotes/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// VideoStore is the persistence the video endpoints need.
type VideoStore interface {
	Put(ctx context.Context, rec store.Record) (store.Record, bool, error)
	Get(ctx context.Context, videoID string) (store.Record, error)
	List(ctx context.Context, limit int) ([]store.Summary, error)
	Delete(ctx context.Context, videoID string) (bool, error)
}

// Server is the HTTP API server for vidnotes.
type Server struct {
	router chi.Router
	videos VideoStore
	stats  *stats.Tracker
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(videos VideoStore, tracker *stats.Tracker, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		videos: videos,
		stats:  tracker,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.RequireAuth {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/notes/parse", s.handleParseNotes)
		r.Post("/api/notes/blocks", s.handleClassify)
		r.Post("/api/transcript/parse", s.handleParseTranscript)
		r.Post("/api/view", s.handleView)
		r.Post("/api/prompt", s.handlePrompt)

		r.Post("/api/videos", s.handlePutVideo)
		r.Get("/api/videos", s.handleListVideos)
		r.Get("/api/videos/{videoID}", s.handleGetVideo)
		r.Get("/api/videos/{videoID}/notes", s.handleVideoNotes)
		r.Get("/api/videos/{videoID}/transcript", s.handleVideoTranscript)
		r.Delete("/api/videos/{videoID}", s.handleDeleteVideo)

		r.Get("/api/stats/parse", s.handleParseStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
