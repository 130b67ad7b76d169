package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shuul-console/internal/api"
	"shuul-console/internal/auth"
	"shuul-console/internal/cache"
	"shuul-console/internal/config"
	"shuul-console/internal/console"
	"shuul-console/internal/dashboard"
	"shuul-console/internal/expiry"
	"shuul-console/internal/locale"
	"shuul-console/internal/middlewares"
)

type Server struct {
	cfg         *config.Config
	logger      *slog.Logger
	appCtx      *middlewares.AppContext
	httpServer  *http.Server
	debugServer *http.Server
	tasks       *expiry.Registry
	consoles    *console.Registry
	cacheProv   cache.Provider
	cancel      context.CancelFunc
}

func New(cfg *config.Config) (*Server, error) {
	logger := setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)

	cacheProvider, err := setupCacheProvider(cfg)
	if err != nil {
		cancel()
		return nil, err
	}

	dashboardService := dashboard.NewService(client, cacheProvider,
		cfg.Dashboard.CounterTTL, cfg.Dashboard.ChartTTL, logger)

	defaultTranslator := locale.NewTranslator(cfg.Locale.Default)
	consoles := console.NewRegistry(client, cfg.Sessions.Lifetime, defaultTranslator.T)

	tasks := expiry.NewRegistry()
	sessionManager, err := auth.NewSessionManager(logger, cfg, tasks, consoles.Drop)
	if err != nil {
		cancel()
		return nil, err
	}

	appCtx := middlewares.NewAppContext(ctx, cfg, logger, sessionManager, client, dashboardService, consoles)

	router := setupRouter(appCtx)
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	var debugServer *http.Server
	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		debugServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Debug.Host, cfg.Server.Debug.Port),
			Handler: setupDebugRouter(),
		}
	}

	return &Server{
		cfg:         cfg,
		logger:      logger,
		appCtx:      appCtx,
		httpServer:  httpServer,
		debugServer: debugServer,
		tasks:       tasks,
		consoles:    consoles,
		cacheProv:   cacheProvider,
		cancel:      cancel,
	}, nil
}

func (s *Server) Start() error {
	go func() {
		s.logger.Info("Server Started", "port", s.cfg.Server.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server failed to start", "error", err)
			s.cancel()
		}
	}()

	if s.debugServer != nil {
		go func() {
			s.logger.Info("Metrics server starting", "address", s.debugServer.Addr)
			if err := s.debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Metrics server failed to start", "error", err)
				s.cancel()
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		s.logger.Info("Shutdown signal received")
	case <-s.appCtx.Done():
		s.logger.Info("Context canceled")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	s.logger.Info("Shutting Down Server")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
		return err
	}

	if s.debugServer != nil {
		if err := s.debugServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Debug server forced to shutdown", "error", err)
		}
	}

	s.consoles.Close()
	s.tasks.Close()
	if err := s.cacheProv.Close(); err != nil {
		s.logger.Warn("closing cache provider failed", "error", err)
	}

	s.logger.Info("Server Exited")
	return nil
}

func setupCacheProvider(cfg *config.Config) (cache.Provider, error) {
	switch cfg.Cache.Type {
	case "", "memory":
		return cache.NewMemoryProvider("dashboard"), nil
	case "redis":
		if cfg.Redis == nil {
			return nil, fmt.Errorf("redis cache requires a redis config block")
		}
		return cache.NewRedisProvider("dashboard", cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Cache.Type)
	}
}
