package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Server wraps an http.Server with logging and graceful shutdown.
// Each service binary builds its own chi router and mounts it here.
type Server struct {
	name string
	srv  *http.Server
	log  zerolog.Logger
}

// New creates a new HTTP server for the named service
func New(name string, port int, handler http.Handler, log zerolog.Logger) *Server {
	return &Server{
		name: name,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log.With().Str("component", "server").Logger(),
	}
}

// Start blocks serving requests until Shutdown is called or the listener fails
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.srv.Addr).Msgf("%s listening", s.name)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msgf("%s shutting down", s.name)
	return s.srv.Shutdown(ctx)
}
