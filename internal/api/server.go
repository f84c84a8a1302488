package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/realworldcase/challenge-engine/internal/challenge"
	"github.com/realworldcase/challenge-engine/internal/config"
	"github.com/realworldcase/challenge-engine/internal/feed"
	"github.com/realworldcase/challenge-engine/internal/ratelimit"
	"github.com/realworldcase/challenge-engine/internal/services"
)

// Server represents the HTTP API server
type Server struct {
	app        config.AppConfig
	config     config.ServerConfig
	router     *chi.Mux
	challenges *challenge.Service
	registry   *services.Registry
	limiter    ratelimit.Limiter
	hub        *feed.Hub
}

// NewServer creates a new API server. A nil limiter disables rate limiting.
func NewServer(
	app config.AppConfig,
	cfg config.ServerConfig,
	challenges *challenge.Service,
	registry *services.Registry,
	limiter ratelimit.Limiter,
	hub *feed.Hub,
) *Server {
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}

	s := &Server{
		app:        app,
		config:     cfg,
		challenges: challenges,
		registry:   registry,
		limiter:    limiter,
		hub:        hub,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// Browser frontends on any origin call this API directly.
	// Browsers reject credentials with a wildcard origin, so none are allowed.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// The feed is long-lived and stays outside the request timeout
	r.Get("/api/v1/challenges/feed", s.handleFeed)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.requestTimeout()))

		r.Get("/", s.handleRoot)
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/category", s.handleGetCategories)
			r.With(s.rateLimitMiddleware).Post("/challenge", s.handleGenerateChallenge)

			r.Route("/challenges", func(r chi.Router) {
				r.Get("/", s.handleListChallenges)
				r.Get("/{id}", s.handleGetChallenge)
			})
		})
	})

	s.router = r
}

func (s *Server) requestTimeout() time.Duration {
	if s.config.RequestTimeout > 0 {
		return s.config.RequestTimeout
	}
	return 60 * time.Second
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
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
