package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/miniforum/internal/config"
	"github.com/MKhiriev/miniforum/internal/logger"
	"github.com/MKhiriev/miniforum/internal/workers"
)

type server struct {
	httpServer *httpServer
	workers    *workers.Workers

	address         string
	shutdownTimeout time.Duration

	// ready receives the bound listener address once serving starts.
	ready chan string

	logger *logger.Logger
}

// NewServer wires handler into an HTTP server. workers may be nil.
func NewServer(handler http.Handler, w *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" || handler == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer:      newHTTPServer(handler, cfg, logger),
		workers:         w,
		address:         cfg.HTTPAddress,
		shutdownTimeout: cfg.ShutdownTimeout,
		ready:           make(chan string, 1),
		logger:          logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(
		ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.address, err)
	}

	if s.workers != nil {
		// sessions that expired while the process was down are cleared
		// before the first request is served
		s.logger.Info().Msg("running workers once at startup")
		s.workers.Run()

		s.logger.Info().Msg("starting workers")
		s.workers.Start()
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()
	s.ready <- listener.Addr().String()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown requested")
	case runErr = <-serveErr:
		s.logger.Err(runErr).Msg("HTTP server stopped unexpectedly")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err = s.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return runErr
}

// Shutdown stops accepting requests, waits for in-flight ones and for running
// worker passes, all bounded by ctx.
func (s *server) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}

	if s.workers != nil {
		select {
		case <-s.workers.Stop().Done():
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("workers: %w", ctx.Err()))
		}
	}

	return errors.Join(errs...)
}
