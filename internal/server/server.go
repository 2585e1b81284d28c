package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect/internal/bootstrap"
	"github.com/yigit/uniconnect/internal/config"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server

	background   context.Context
	stop         context.CancelFunc
	shutdownOnce sync.Once
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	background, stop := context.WithCancel(context.Background())

	repo, closeStorage, err := bootstrap.SetupStorage(background, cfg, lgr)
	if err != nil {
		stop()
		return nil, fmt.Errorf("failed to setup client storage: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(background, cfg, repo, lgr)
	if err != nil {
		closeStorage()
		stop()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config:     cfg,
		router:     bootstrap.SetupRouter(cfg, deps, lgr),
		deps:       deps,
		logger:     lgr,
		background: background,
		stop: func() {
			stop()
			closeStorage()
		},
	}, nil
}

// Run serves until the listener fails or SIGINT/SIGTERM arrives, then shuts
// everything down.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Str("backend", s.deps.Gateway.BaseURL()).Msg("Starting server...")

	go s.deps.ChatHub.Run(s.background)
	s.deps.Scheduler.Start()

	s.http = &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	signalCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case <-signalCtx.Done():
		s.logger.Info().Msg("Received OS signal, initiating shutdown...")
	}

	return errors.Join(runErr, s.Shutdown(context.Background()))
}

// Shutdown stops the HTTP server, the scheduled refresh and the session, then
// the chat hub and client storage. Only the first call does any work.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		err = s.shutdown(ctx)
	})
	return err
}

func (s *Server) shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var errs []error
	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}

	s.deps.Scheduler.Stop(ctx)
	s.deps.Session.Close()
	s.stop()

	s.logger.Info().Msg("Server shutdown process complete.")
	return errors.Join(errs...)
}
