package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/harvestlane/harvestlane-backend/api/routes"
	"github.com/harvestlane/harvestlane-backend/internal/locationsync"
	"github.com/harvestlane/harvestlane-backend/internal/products"
	"github.com/harvestlane/harvestlane-backend/internal/search"
	"github.com/harvestlane/harvestlane-backend/internal/sellers"
	"github.com/harvestlane/harvestlane-backend/pkg/config"
	"github.com/harvestlane/harvestlane-backend/pkg/db"
	"github.com/harvestlane/harvestlane-backend/pkg/logger"
	"github.com/harvestlane/harvestlane-backend/pkg/metrics"
	"github.com/harvestlane/harvestlane-backend/pkg/migrate"
	"github.com/harvestlane/harvestlane-backend/pkg/outbox"
	"github.com/harvestlane/harvestlane-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	registry := prometheus.NewRegistry()

	sellerRepo := sellers.NewRepository(dbClient.DB())
	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)
	sellerService, err := sellers.NewService(sellerRepo, dbClient, outboxService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create seller service", err)
		os.Exit(1)
	}

	productRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productRepo, sellerService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	searchService, err := search.NewService(productRepo, sellerService, cfg.Search, metrics.NewSearchMetrics(registry), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create search service", err)
		os.Exit(1)
	}

	syncService, err := locationsync.NewService(sellerService, sellerRepo, productRepo, cfg.Sync, metrics.NewSyncMetrics(registry), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create sync service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, registry, searchService, sellerService, productService, syncService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
