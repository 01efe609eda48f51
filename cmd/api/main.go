// Command api runs the HTTP service.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/go-service-template/internal/config"
	"github.com/deppfellow/go-service-template/internal/handler"
	"github.com/deppfellow/go-service-template/internal/logger"
	"github.com/deppfellow/go-service-template/internal/router"
	"github.com/deppfellow/go-service-template/internal/server"
	"github.com/deppfellow/go-service-template/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run(context.Background(), os.Stdout))
}

// run starts the service and blocks until it stops. It returns the
// process exit code.
func run(ctx context.Context, out io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := logger.NewLogger(config.DefaultObservabilityConfig(), out)
		bootLog.Error().Err(err).Msg("failed to load config")
		return 1
	}

	log := logger.NewLogger(cfg.Observability, out)

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		// Tracing is optional; keep serving without it.
		log.Warn().Err(err).Msg("failed to start New Relic, continuing without it")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return 1
	}

	services, err := service.NewServices(srv)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return 1
	}

	r := router.NewRouter(srv, handler.NewHandlers(srv, services))
	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := srv.Listen()
	if err != nil {
		loggerService.Shutdown()
		return exitCode(err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		loggerService.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return 1
	}

	log.Info().Msg("server exited properly")
	return 0
}

// exitCode maps a startup error to the process exit code.
func exitCode(err error) int {
	var fault *server.StartupFault
	if errors.As(err, &fault) {
		return fault.ExitCode
	}
	return 1
}
