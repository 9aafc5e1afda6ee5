package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/martinmoraga/pyvolt/pkg/defaults"
)

// Server serves one estimation session over HTTP
type Server struct {
	config      *Config
	httpServer  *http.Server
	rateLimiter *rate.Limiter
	session     *Session
	mu          sync.RWMutex
	ready       bool
}

// Option configures a Server during construction
type Option func(*Server)

// WithConfig replaces the entire configuration
func WithConfig(config *Config) Option {
	return func(s *Server) {
		if config != nil {
			s.config = config
		}
	}
}

// WithName sets the server name reported on /version
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the build version reported on /version
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithSession attaches the estimation session the /v1 routes serve
func WithSession(session *Session) Option {
	return func(s *Server) {
		s.session = session
	}
}

// WithHandler registers an additional route behind the middleware chain
func WithHandler(path string, handler http.HandlerFunc) Option {
	return func(s *Server) {
		if s.config.Handlers == nil {
			s.config.Handlers = make(map[string]http.HandlerFunc)
		}
		s.config.Handlers[path] = handler
	}
}

// New creates a server instance. Configuration defaults come from
// parseConfig; options apply on top.
func New(opts ...Option) *Server {
	s := &Server{
		config: parseConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rateLimiter = rate.NewLimiter(s.config.RateLimit, s.config.RateLimitBurst)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
		Handler:           s.setupRoutes(),
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/readyz", s.handleReadyz)
	mux.Handle("/metrics", promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc("/version", s.withMiddleware(s.handleVersion))
	mux.HandleFunc("/v1/report", s.withMiddleware(s.handleReport))
	mux.HandleFunc("/v1/telemetry", s.withMiddleware(s.handleTelemetry))

	for path, handler := range s.config.Handlers {
		mux.HandleFunc(path, s.withMiddleware(handler))
	}

	return mux
}

// Handler returns the server's routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetReady marks the server as ready to serve traffic
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// Ready reports whether the server accepts traffic
func (s *Server) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Run starts the HTTP server and blocks until the context ends or the
// listener fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.SetReady(true)

	slog.Info("starting server",
		slog.String("name", s.config.Name),
		slog.String("address", s.httpServer.Addr),
		slog.Any("rateLimit", s.config.RateLimit),
		slog.Int("rateLimitBurst", s.config.RateLimitBurst),
		slog.Duration("shutdownTimeout", s.config.ShutdownTimeout))

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	slog.Info("shutting down server")
	return s.httpServer.Shutdown(shutdownCtx)
}
