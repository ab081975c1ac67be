package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Simplici0/exportsuite/internal/config"
	"github.com/Simplici0/exportsuite/internal/db"
	"github.com/Simplici0/exportsuite/internal/docno"
	"github.com/Simplici0/exportsuite/internal/logging"
	"github.com/Simplici0/exportsuite/internal/metrics"
	"github.com/Simplici0/exportsuite/internal/migrations"
	"github.com/Simplici0/exportsuite/internal/seed"
	"github.com/Simplici0/exportsuite/internal/store"
)

type server struct {
	store    *store.Store
	logger   *zap.Logger
	metrics  *metrics.Metrics
	registry *prometheus.Registry
}

func newServer(st *store.Store, logger *zap.Logger, m *metrics.Metrics, registry *prometheus.Registry) *server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &server{store: st, logger: logger, metrics: m, registry: registry}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(s.logger))
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
	}

	r.Get("/healthz", s.handleHealth)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/pricing/landed-cost", s.handleLandedCost)
		r.Post("/pricing/freight", s.handleFreightEstimate)
		r.Post("/pricing/markup", s.handleMarkup)

		r.Get("/rates", s.handleRatesGet)
		r.Put("/rates", s.handleRatesUpdate)

		r.Get("/quotes", s.handleQuotesList)
		r.Post("/quotes", s.handleQuoteCreate)
		r.Get("/quotes/export.xlsx", s.handleQuotesExport)
		r.Get("/quotes/{id}", s.handleQuoteGet)
		r.Put("/quotes/{id}", s.handleQuoteUpdate)

		r.Post("/orders", s.handleOrderCreate)
		r.Get("/orders/{id}", s.handleOrderGet)
		r.Post("/orders/{id}/items", s.handleOrderItemAdd)
		r.Put("/orders/{id}/items/{itemID}", s.handleOrderItemUpdate)
	})

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if cfg.ShouldMigrate() {
		if err := migrations.Up(database); err != nil {
			return fmt.Errorf("run database migrations: %w", err)
		}
	}

	stats, err := seed.Run(database)
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	logger.Info("defaults seeded", zap.Int("inserted", stats.Inserts))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	srv := newServer(store.New(database, docno.New(), m), logger, m, registry)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
