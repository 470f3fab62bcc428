package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/activities-service/internal/app/enrollment"
	"github.com/preston-bernstein/activities-service/internal/config"
	httpserver "github.com/preston-bernstein/activities-service/internal/http"
	"github.com/preston-bernstein/activities-service/internal/http/handlers"
	"github.com/preston-bernstein/activities-service/internal/http/middleware"
	"github.com/preston-bernstein/activities-service/internal/logging"
	"github.com/preston-bernstein/activities-service/internal/metrics"
)

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	service       *enrollment.Service
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	closeStore    func() error
}

// New loads the catalog, opens the roster store and wires HTTP and metrics servers.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	st, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(ctx)
		}
		return nil, err
	}

	svc := enrollment.NewService(st, recorder)
	if err := recorder.ObserveOccupancy(svc.Occupancy); err != nil {
		logging.Warn(logger, "occupancy gauges unavailable", "error", err)
	}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		service:       svc,
		httpServer:    buildHTTPServer(cfg, svc, logger, recorder),
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		closeStore:    closeStore,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *enrollment.Service, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, svc *enrollment.Service, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(svc, logger, int64(cfg.MaxBodyBytes))
	router := httpserver.NewRouter(handler, cfg.StaticDir)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run serves HTTP (and metrics, when enabled) until ctx is cancelled or a
// listener fails, then shuts everything down. It returns the listener error, if any.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return serve("http", s.httpServer, s.logger) })
	if s.metricsServer != nil {
		g.Go(func() error { return serve("metrics", s.metricsServer, s.logger) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logging.Info(s.logger, "shutdown signal received")
		s.gracefulShutdown()
		return nil
	})

	return g.Wait()
}

func serve(name string, srv httpServer, logger *slog.Logger) error {
	logging.Info(logger, name+" server starting", slog.String("addr", srv.Addr()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error(logger, name+" server failed", err)
		return err
	}
	return nil
}

func (s *Server) gracefulShutdown() {
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = shutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.closeStore != nil {
		if err := s.closeStore(); err != nil {
			logging.Warn(s.logger, "store close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
