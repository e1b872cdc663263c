package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/harvestlane/harvestlane-backend/internal/locationsync"
	"github.com/harvestlane/harvestlane-backend/internal/products"
	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/config"
	"github.com/harvestlane/harvestlane-backend/pkg/db"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/metrics"
	"github.com/harvestlane/harvestlane-backend/pkg/migrate"
	"github.com/harvestlane/harvestlane-backend/pkg/outbox"
	"github.com/harvestlane/harvestlane-backend/pkg/redis"
)

const lockKeyFormat = "sync-worker:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "sync-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	runAll := flag.Bool("all", false, "run one full resync and exit instead of consuming the outbox")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "sync-worker"

	logg = logger.New(logger.Options{
		ServiceName: "sync-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})

	// Only one worker instance may rewrite snapshots at a time.
	lock, err := redis.NewLock(redisClient, redisClient.LockKey(lockKey(cfg.App.Env)), cfg.Sync.LockTTL)
	if err != nil {
		logg.Error(ctx, "failed to create sync lock", err)
		os.Exit(1)
	}
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		logg.Error(ctx, "failed to acquire sync lock", err)
		os.Exit(1)
	}
	if !acquired {
		logg.Info(ctx, "another sync-worker holds the lock, exiting")
		return
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			logg.Error(ctx, "failed to release sync lock", err)
		}
	}()

	syncMetrics := metrics.NewSyncMetrics(prometheus.DefaultRegisterer)

	sellerRepo := sellers.NewRepository(dbClient.DB())
	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	sellerService, err := sellers.NewService(sellerRepo, dbClient, outboxService, logg)
	if err != nil {
		logg.Error(ctx, "failed to create seller service", err)
		os.Exit(1)
	}

	productRepo := products.NewRepository(dbClient.DB())
	syncService, err := locationsync.NewService(sellerService, sellerRepo, productRepo, cfg.Sync, syncMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create sync service", err)
		os.Exit(1)
	}

	if *runAll {
		logg.Info(ctx, "starting full location resync")
		summary, err := syncService.SyncAll(ctx)
		if err != nil {
			logg.Error(ctx, "full resync failed", err)
			os.Exit(1)
		}
		resultCtx := logg.WithFields(ctx, map[string]any{
			"farmers_updated":   summary.FarmersUpdated,
			"retailers_updated": summary.RetailersUpdated,
			"sellers_processed": summary.SellersProcessed,
			"sellers_skipped":   summary.SellersSkipped,
			"sellers_failed":    summary.SellersFailed,
		})
		logg.Info(resultCtx, "full location resync completed")
		return
	}

	dispatcher, err := locationsync.NewDispatcher(outbox.NewRepository(dbClient.DB()), syncService, cfg.Sync, syncMetrics, logg)
	if err != nil {
		logg.Error(ctx, "failed to create outbox dispatcher", err)
		os.Exit(1)
	}

	logg.Info(ctx, "starting outbox dispatcher")
	if err := dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "sync worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "sync worker shutting down gracefully")
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
