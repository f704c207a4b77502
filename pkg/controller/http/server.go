package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/m-mizutani/depdiff/pkg/domain/interfaces"
)

const defaultMaxBodyBytes = 10 << 20

// config holds internal HTTP server configuration
type config struct {
	addr         string
	maxBodyBytes int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithMaxBodyBytes limits the size of an uploaded lockfile
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	scanUC interfaces.ScanUseCase,
	jobUC interfaces.JobUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:         "localhost:8080",
		maxBodyBytes: defaultMaxBodyBytes,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)
	router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)

	// Health check
	router.Get("/health", handleHealth)

	h := &scanHandler{
		scanUC:       scanUC,
		jobUC:        jobUC,
		maxBodyBytes: cfg.maxBodyBytes,
	}
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/scan", h.Scan)
		r.Post("/jobs", h.SubmitJob)
		r.Get("/jobs/{id}", h.GetJob)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
