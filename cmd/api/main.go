package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/giftloom/configurator-backend/api/controllers"
	"github.com/giftloom/configurator-backend/api/routes"
	"github.com/giftloom/configurator-backend/internal/cartlines"
	"github.com/giftloom/configurator-backend/internal/configsets"
	"github.com/giftloom/configurator-backend/internal/discounts"
	"github.com/giftloom/configurator-backend/pkg/config"
	"github.com/giftloom/configurator-backend/pkg/logger"
	"github.com/giftloom/configurator-backend/pkg/metrics"
	"github.com/giftloom/configurator-backend/pkg/redis"
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

	var store configsets.Store
	var statePinger controllers.Pinger

	if cfg.Redis.Enabled() {
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

		redisStore, err := configsets.NewRedisStore(redisClient)
		if err != nil {
			logg.Error(context.Background(), "failed to create state store", err)
			os.Exit(1)
		}
		store = redisStore
		statePinger = redisClient
	} else {
		logg.Warn(context.Background(), "no redis endpoint configured, configurator state is in-memory only")
		store = configsets.NewMemoryStore()
	}

	registry := discounts.NewRegistry()
	resolver := discounts.NewResolver(cfg.Discounts, logg)

	setsService, err := configsets.NewService(context.Background(), store, registry, cfg.State, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create configurator service", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(promRegistry)

	submitter, err := cartlines.NewSubmitter(cartlines.NewSimulatedCartAPI(cfg.CartAPI), checkoutMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart submitter", err)
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
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			statePinger,
			setsService,
			resolver,
			registry,
			submitter,
			checkoutMetrics,
			promRegistry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
