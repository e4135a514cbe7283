package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-sync/internal/catalog"
	"catalog-sync/internal/catalog/client"
	"catalog-sync/internal/catalog/cursor"
	cataloghttp "catalog-sync/internal/catalog/http"
	"catalog-sync/internal/catalog/media"
	"catalog-sync/internal/catalog/messaging"
	"catalog-sync/internal/catalog/publish"
	"catalog-sync/internal/catalog/service"
	"catalog-sync/internal/catalog/stock"
	"catalog-sync/internal/catalog/store"
	"catalog-sync/internal/catalog/syncer"
	"catalog-sync/internal/config"

	_ "catalog-sync/docs"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	metricIngestedTotal    = "products_ingested_total"
	metricStockSyncedTotal = "stock_synced_total"
	metricPublishedTotal   = "products_published_total"
	metricSkippedRunsTotal = "sync_runs_skipped_total"
	migrateSourcePrefix    = "file://"
	postgresDriverName     = "postgres"
)

// @title        Catalog Sync API
// @version      1.0
// @description  Product synchronization and stock reconciliation pipeline.
// @host         localhost:8080
// @BasePath     /
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadSyncd()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("run migrations", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open(postgresDriverName, cfg.DatabaseURL)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.DBPingTimeout)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("ping database", "error", err)
		os.Exit(1)
	}

	rabbitConn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("connect rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitConn.Close()

	publisher, err := messaging.NewRabbitPublisher(rabbitConn, catalog.EventsQueue)
	if err != nil {
		logger.Error("init publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	ingestedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricIngestedTotal,
		Help: "Total number of products ingested from the remote feed",
	})
	stockSyncedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricStockSyncedTotal,
		Help: "Total number of products whose displayed stock was reconciled",
	})
	publishedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricPublishedTotal,
		Help: "Total number of products published",
	})
	skippedRunsCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricSkippedRunsTotal,
		Help: "Total number of sync runs skipped because one was in flight",
	})
	prometheus.MustRegister(ingestedCounter, stockSyncedCounter, publishedCounter, skippedRunsCounter)

	api := client.New(cfg.APIBaseURL, cfg.APIToken)
	products := store.New()
	cursors := cursor.NewPostgres(db)

	coordinator := syncer.New(api, products, cursors, publisher, logger, cfg.SyncPageLimit, ingestedCounter, skippedRunsCounter)
	reconciler := stock.New(api, products, publisher, logger, stockSyncedCounter)
	workflow := publish.New(api, products, publisher, logger, publishedCounter)
	resolver := media.New(api, logger)

	pipeline := service.NewPipeline(coordinator, reconciler, workflow, resolver, products, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pipeline.Bootstrap(ctx); err != nil {
		logger.Error("bootstrap pipeline", "error", err)
		os.Exit(1)
	}

	go runSyncLoop(ctx, pipeline, cfg.SyncInterval, logger)

	handler := cataloghttp.NewHandler(pipeline)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cataloghttp.RequestIDMiddleware())
	router.Use(cataloghttp.AccessLogMiddleware(logger))
	cataloghttp.RegisterRoutes(router, handler, cursors)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("catalog sync service started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("catalog sync service stopped")
}

// runSyncLoop triggers an incremental sync on a fixed interval. Overlapping
// runs are impossible: a tick that fires while a sync is in flight comes back
// stale without touching the network.
func runSyncLoop(ctx context.Context, pipeline *service.Pipeline, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			outcome, err := pipeline.Sync(ctx)
			if err != nil {
				logger.Error("scheduled sync failed", "error", err)
				continue
			}
			if outcome.Stale {
				continue
			}
			logger.Info("scheduled sync finished",
				"new_items", len(outcome.NewItems),
				"synced", outcome.Synced,
				"skipped", outcome.Skipped,
			)
		}
	}
}

func runMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New(migrateSourcePrefix+migrationsPath, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
