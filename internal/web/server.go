// Package web serves the storefront catalog as a JSON API.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/gamestore/internal/core"
	"github.com/JonMunkholm/gamestore/internal/media"
	"github.com/JonMunkholm/gamestore/internal/metrics"
	webmw "github.com/JonMunkholm/gamestore/internal/web/middleware"
)

// Options configures a Server. Zero values disable the optional pieces.
type Options struct {
	Images  *media.ImageIndex
	Metrics *metrics.Metrics

	// WhatsAppPhone receives purchase messages.
	WhatsAppPhone string

	RequestTimeout time.Duration
	TrustedProxies []string
	EnableCSP      bool

	// RequestsPerMinute is the per-IP budget; 0 disables rate limiting.
	RequestsPerMinute int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server is the HTTP server for the storefront API.
type Server struct {
	service *core.Service
	opts    Options
	router  *chi.Mux
	server  *http.Server
	limiter *rateLimiter
}

// NewServer creates a Server with its middleware and routes installed.
func NewServer(service *core.Service, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 30 * time.Second
	}
	s := &Server{
		service: service,
		opts:    opts,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.opts.TrustedProxies))
	s.router.Use(webmw.Logger)
	s.router.Use(middleware.Recoverer)
	if s.opts.Metrics != nil {
		s.router.Use(s.opts.Metrics.Middleware)
	}
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.opts.RequestTimeout))
	s.router.Use(securityHeaders(s.opts.EnableCSP))

	if s.opts.RequestsPerMinute > 0 {
		s.limiter = newRateLimiter(s.opts.RequestsPerMinute, time.Minute)
		s.router.Use(s.limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	if s.opts.Metrics != nil {
		s.router.Handle("/metrics", s.opts.Metrics.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/home", s.handleHome)

		r.Get("/packs", s.handleListPacks)
		r.Get("/packs/{id}", s.handleGetPack)

		r.Get("/units", s.handleListUnits)
		r.Get("/units/{slug}", s.handleGetUnit)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "Not found",
			Message: "Not found",
			Code:    "REQ404",
		})
	})
}

// Start listens on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  s.opts.IdleTimeout,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server and its background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.limiter != nil {
		s.limiter.stop()
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				// JSON only: nothing may be loaded or framed.
				h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			}
			next.ServeHTTP(w, r)
		})
	}
}
