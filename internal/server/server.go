package server

import (
	"context"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"football-scoreboard/internal/board"
	"football-scoreboard/internal/cache"
	"football-scoreboard/internal/config"
	"football-scoreboard/internal/filter"
	httpserver "football-scoreboard/internal/http"
	"football-scoreboard/internal/logging"
	"football-scoreboard/internal/metrics"
	"football-scoreboard/internal/poller"
	"football-scoreboard/internal/providers"
	"football-scoreboard/internal/providers/espn"
	"football-scoreboard/internal/rankings"
	"football-scoreboard/internal/render"
	"football-scoreboard/internal/store"
)

var metricsSetup = metrics.Setup

// Server wires the poller, board, and HTTP surfaces together and owns
// their lifecycles.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.PoolStore
	poller        *poller.Poller
	board         *board.Board
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New assembles a Server from runtime configuration.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	boardCfg, err := config.LoadBoard(cfg.BoardConfig)
	if err != nil {
		return nil, fmt.Errorf("board config: %w", err)
	}

	recorder, metricsSrv, metricsStop := buildMetrics(cfg, logger)

	client := espn.NewClient(espn.Config{
		BaseURL:    cfg.ESPN.BaseURL,
		HTTPClient: espn.NewThrottledClient(cfg.ESPN.RequestTimeout, cfg.ESPN.RequestsPerMin),
	})
	provider := providers.NewRetryingProvider(client, logger, cfg.ESPN.MaxRetries, 0)

	poolStore := store.NewPoolStore()
	resolver := rankings.NewResolver(client, logger, recorder)
	gameFilter := filter.NewGameFilter(resolver, logger)
	plr := poller.New(provider, resolver, poolStore, buildCache(cfg, logger), &boardCfg, logger, recorder, cfg.PollInterval)

	sink := buildSink(cfg, boardCfg)
	display := board.New(&boardCfg, poolStore, plr, gameFilter, sink, recorder, logger)

	handler := httpserver.NewHandler(display, poolStore, plr, logger)
	router := httpserver.NewRouter(handler, httpserver.Instrument(recorder, logger))

	srv := netHTTPServer{srv: &nethttp.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         poolStore,
		poller:        plr,
		board:         display,
		httpServer:    srv,
		metricsServer: metricsSrv,
		metricsStop:   metricsStop,
	}, nil
}

// Run starts the poller, the display loop, and the HTTP servers, then
// waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)
	go s.displayLoop(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

// displayLoop drives the board from a single goroutine; all rotation
// state lives behind the board's mutex.
func (s *Server) displayLoop(ctx context.Context) {
	interval := s.cfg.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.board.Display(ctx, nil, false)
			if s.board.IsCycleComplete() {
				logging.Debug(s.logger, "display cycle complete, restarting rotation")
				s.board.ResetCycle()
			}
		}
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", "addr", s.httpServer.Addr())
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			logging.Error(s.logger, "http server failed", err)
			if stop != nil {
				stop()
			}
		}
	}()
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", "addr", s.metricsServer.Addr())
	go func() {
		if err := s.metricsServer.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
			logging.Error(s.logger, "metrics server failed", err)
		}
	}()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.poller.Stop()
	s.board.Cleanup()

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
	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recorder, handler, shutdown, err := metricsSetup(context.Background(), metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil {
		mux := nethttp.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{srv: &nethttp.Server{
			Addr:         ":" + cfg.Metrics.Port,
			Handler:      mux,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
			IdleTimeout:  idleTimeout,
		}}
	}
	return recorder, metricsSrv, shutdown
}

// buildCache picks the cache backend: Redis when an address is
// configured, otherwise in-process memory.
func buildCache(cfg config.Config, logger *slog.Logger) cache.Cache {
	if cfg.Redis.Addr == "" {
		return cache.NewMemory()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	logging.Info(logger, "using redis cache", "addr", cfg.Redis.Addr)
	return cache.NewRedis(client, "scoreboard")
}

func buildSink(cfg config.Config, boardCfg config.BoardConfig) render.Sink {
	opts := render.Options{
		ShowRecords: boardCfg.ShowRecords,
		ShowRanking: boardCfg.ShowRanking,
		ShowOdds:    boardCfg.ShowOdds,
	}
	if cfg.RenderMode == "frame" {
		return render.NewFrameSink(opts)
	}
	return render.NewTextSink(os.Stdout, opts)
}
