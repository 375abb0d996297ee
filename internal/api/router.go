package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danilomoraisgustavo/myworlds/internal/scheduler"
	"github.com/danilomoraisgustavo/myworlds/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

const (
	requestTimeout  = 30 * time.Second
	generateTimeout = 2 * time.Minute
)

// JobRunner exposes the scheduler to the admin routes.
type JobRunner interface {
	GetJobStatus() []scheduler.JobStatus
	RunJobNow(name string) error
}

// Server represents the API server.
type Server struct {
	router   *chi.Mux
	handlers *Handlers
	jobs     JobRunner
	addr     string
	server   *http.Server
}

// NewServer creates a new API server. jobs may be nil when no scheduler runs.
func NewServer(store storage.Repository, generator ContentGenerator, jobs JobRunner, addr string) *Server {
	handlers := NewHandlers(store, generator)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	srv := &Server{
		router:   r,
		handlers: handlers,
		jobs:     jobs,
		addr:     addr,
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))

		// Health
		r.Get("/health", handlers.HealthCheck)
		r.Get("/stats", handlers.GetStats)
		r.Get("/categories", handlers.GetCategories)

		// Articles
		r.Route("/articles", func(r chi.Router) {
			r.Get("/", handlers.GetArticles)
			r.Post("/", handlers.CreateArticle)
			r.Get("/slug/{slug}", handlers.GetArticleBySlug)
			r.Get("/{id}", handlers.GetArticle)
			r.Put("/{id}", handlers.UpdateArticle)
			r.Delete("/{id}", handlers.DeleteArticle)
		})

		// Tournaments
		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", handlers.GetTournaments)
			r.Post("/", handlers.CreateTournament)
		})

		// Admin routes (no auth for development)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/jobs", srv.AdminGetJobs)
			r.Post("/jobs/{name}/run", srv.AdminRunJob)
		})
	})

	// Generation waits on the text model, so it gets a longer deadline.
	r.With(middleware.Timeout(generateTimeout)).Post("/ai/generate", handlers.GenerateContent)

	return srv
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the API server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: generateTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("Starting API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// ============================================================================
// ADMIN HANDLERS
// ============================================================================

// AdminGetJobs returns the status of all scheduled jobs.
func (s *Server) AdminGetJobs(w http.ResponseWriter, r *http.Request) {
	if s.jobs == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not available")
		return
	}

	jobs := s.jobs.GetJobStatus()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// AdminRunJob runs a specific job by name.
func (s *Server) AdminRunJob(w http.ResponseWriter, r *http.Request) {
	if s.jobs == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not available")
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Job name is required")
		return
	}

	if err := s.jobs.RunJobNow(name); err != nil {
		switch {
		case errors.Is(err, scheduler.ErrJobNotFound):
			respondError(w, http.StatusNotFound, "Job not found")
		case errors.Is(err, scheduler.ErrJobRunning):
			respondError(w, http.StatusConflict, "Job already running")
		default:
			respondError(w, http.StatusServiceUnavailable, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "ok",
		"message": "Job triggered: " + name,
	})
}
