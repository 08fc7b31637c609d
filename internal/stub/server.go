// Package stub serves an in-memory implementation of the challenge
// admin REST surface the console consumes. It backs the integration
// tests and local development; it is not a production backend.
package stub

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the stub admin API server
type Server struct {
	router *chi.Mux
	store  *Store
}

// NewServer creates a stub server around a store
func NewServer(store *Store) *Server {
	s := &Server{store: store}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// Store returns the backing store, for test seeding
func (s *Server) Store() *Store {
	return s.store
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/admin", func(r chi.Router) {
		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", s.handleListChallenges)
			r.Post("/", s.handleCreateChallenge)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetChallenge)
				r.Post("/", s.handleUpdateChallenge)
				r.Delete("/", s.handleDeleteChallenge)
				r.Get("/distribution", s.handleGetDistribution)
				r.Post("/distribution", s.handleAssignDistribution)
			})
		})

		r.Get("/communities", s.handleListCommunities)

		r.Route("/actions", func(r chi.Router) {
			r.Get("/", s.handleListActions)
			r.Post("/", s.handleCreateAction)
			r.Post("/{id}", s.handleUpdateAction)
		})

		r.Get("/rewards", s.handleListRewards)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
