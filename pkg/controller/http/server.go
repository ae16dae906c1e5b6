package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/recall-lab/recall/pkg/usecase"
	"github.com/recall-lab/recall/pkg/utils/logging"
)

// Server is the HTTP transport for the knowledge operations.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
	appKey string
}

// Options is a functional option for Server configuration
type Options func(*Server)

// WithAppKey enables X-App-Key header authentication. An empty key leaves
// the endpoints open.
func WithAppKey(key string) Options {
	return func(s *Server) {
		s.appKey = key
	}
}

// New creates the HTTP server routing the ingest and search operations.
func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(appKeyMiddleware(s.appKey))
		r.Post("/ingest", s.handleIngest())
		r.Post("/search", s.handleSearch())
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
