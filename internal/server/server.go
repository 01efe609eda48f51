// Package server defines the Server struct that composes the app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - http.Server and its listening socket
//
// Construction performs no I/O. Binding happens in Listen (or Start), which
// reports bind failures as a *StartupFault so the caller decides how the
// process exits.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/deppfellow/go-service-template/internal/config"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/go-service-template/internal/logger"
)

// Server is the application container that holds shared resources.
//
// It is not the HTTP handler itself; the echo instance built by the router
// package is attached with SetupHTTPServer.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	httpServer *http.Server
	state      atomic.Int32
}

// New constructs a Server. It does not bind any port.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
	}, nil
}

// SetupHTTPServer configures the internal net/http server around handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    s.Config.Server.Address(),
		Handler: handler,

		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// State reports where the listener is in its lifecycle.
func (s *Server) State() ListenerState {
	return ListenerState(s.state.Load())
}

// Start binds the configured port and serves until Shutdown.
//
// A bind failure is returned as a *StartupFault. A graceful shutdown
// returns nil.
func (s *Server) Start() error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Listen acquires the listening socket.
//
// On success the server is LISTENING and the readiness line is logged.
// On failure it is FAILED and the returned error is a *StartupFault.
func (s *Server) Listen() (net.Listener, error) {
	if s.httpServer == nil {
		return nil, errors.New("HTTP server not initialized")
	}
	if !s.state.CompareAndSwap(int32(StateUnbound), int32(StateBinding)) {
		return nil, fmt.Errorf("listener already %s", s.State())
	}

	port := s.Config.Server.Port

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		s.state.Store(int32(StateFailed))

		fault := newStartupFault(port, err)
		s.logFault(fault)
		return nil, fault
	}

	s.state.Store(int32(StateListening))

	s.Logger.Info().
		Int("port", port).
		Str("env", s.Config.Primary.Env).
		Msgf("Server running on port %d", port)

	return ln, nil
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server stopped: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and its dependencies.
//
// In-flight requests get until ctx's deadline to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	s.LoggerService.Shutdown()

	return nil
}

func (s *Server) logFault(fault *StartupFault) {
	switch fault.Kind {
	case FaultAddrInUse:
		s.Logger.Error().
			Err(fault.Err).
			Int("port", fault.Port).
			Msgf("Port %d is already in use. Please use a different port or terminate the process using this port.", fault.Port)
	default:
		s.Logger.Error().
			Err(fault.Err).
			Int("port", fault.Port).
			Msg("An error occurred")
	}
}
