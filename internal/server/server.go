package server

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/payflow/balance-service/internal/config"
	"github.com/payflow/balance-service/internal/logging"
)

// Server encapsulates the HTTP server serving the health endpoint.
// It runs with the net/http defaults: one goroutine per connection and no timeouts.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
	port       string
	banner     io.Writer
}

// Option configures a Server.
type Option func(s *Server)

// WithBannerWriter sets where the startup line is written. Defaults to os.Stdout.
func WithBannerWriter(w io.Writer) Option {
	return func(s *Server) { s.banner = w }
}

// NewServer initializes a new Server with given configuration.
func NewServer(cfg *config.Config, logger logging.Logger, opts ...Option) *Server {
	handler := loggingMiddleware(logger, newRouter(logger))

	s := &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.HTTPPort,
			Handler: handler,
		},
		logger: logger,
		port:   cfg.HTTPPort,
		banner: os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler returns the composed HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run binds the port and serves until the process exits or Close is called.
// A bind failure is returned immediately.
func (s *Server) Run() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Listen binds the configured address and writes the startup line.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.logger.Error("Failed to bind HTTP listener", "addr", s.httpServer.Addr, "error", err)
		return nil, fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}

	s.logger.Info("HTTP listener bound", "addr", ln.Addr().String())
	if _, err := fmt.Fprintf(s.banner, "Balance Service running on port %s\n", s.port); err != nil {
		s.logger.Warn("Failed to write startup line", "error", err)
	}

	return ln, nil
}

// Serve accepts connections on ln. It returns nil once Close has been called.
func (s *Server) Serve(ln net.Listener) error {
	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP server error", "error", err)
		return fmt.Errorf("HTTP server failed: %w", err)
	}
	s.logger.Info("HTTP server stopped", "addr", ln.Addr().String())
	return nil
}

// Close stops the server immediately, dropping in-flight requests.
func (s *Server) Close() error {
	return s.httpServer.Close()
}
