// Package server wires configuration, cache, provider, services and HTTP
// plumbing into a runnable process.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"mlb-splits-service/internal/app/resolver"
	"mlb-splits-service/internal/app/splits"
	"mlb-splits-service/internal/cache"
	"mlb-splits-service/internal/config"
	httpserver "mlb-splits-service/internal/http"
	"mlb-splits-service/internal/http/handlers"
	"mlb-splits-service/internal/http/middleware"
	"mlb-splits-service/internal/logging"
	"mlb-splits-service/internal/metrics"
	"mlb-splits-service/internal/providers"
	"mlb-splits-service/internal/providers/statsapi"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         cache.Store
	resolver      *resolver.Resolver
	splitsService *splits.Service
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	storeClose    func() error
}

// New constructs a server with the default provider wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.StatsProvider) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	if provider == nil {
		provider = statsapi.NewClient(statsapi.Config{
			BaseURL:    cfg.StatsAPI.BaseURL,
			HTTPClient: &http.Client{Timeout: cfg.StatsAPI.Timeout},
		})
	}
	provider = providers.NewRetryingProvider(provider, statsapi.ProviderName, logger, recorder,
		cfg.StatsAPI.RetryMax, cfg.StatsAPI.RetryInterval)

	store, storeClose := buildStore(cfg.Cache, logger)
	res := resolver.New(resolver.Config{
		Provider: provider,
		Store:    store,
		TeamID:   statsapi.TeamID,
		Logger:   logger,
		Recorder: recorder,
		TTL:      cfg.Cache.TTL,
	})
	svc := splits.New(splits.Config{
		Provider: provider,
		Store:    store,
		Logger:   logger,
		Recorder: recorder,
		TTL:      cfg.Cache.TTL,
	})
	httpSrv := buildHTTPServer(cfg, res, svc, store, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         store,
		resolver:      res,
		splitsService: svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		storeClose:    storeClose,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, res *resolver.Resolver, svc *splits.Service, store cache.Store, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(res, svc, store, logger)
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP and metrics servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.storeClose != nil {
		if err := s.storeClose(); err != nil && s.logger != nil {
			s.logger.Warn("cache store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + cfg.Metrics.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
