package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/conectlink/conectlink-backend/internal/cron"
	"github.com/conectlink/conectlink-backend/internal/subscriptions"
	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/db"
	"github.com/conectlink/conectlink-backend/pkg/logger"
	"github.com/conectlink/conectlink-backend/pkg/metrics"
	"github.com/conectlink/conectlink-backend/pkg/migrate"
	"github.com/conectlink/conectlink-backend/pkg/redis"
)

const lockKeyFormat = "cl:cron-worker:lock:%s"

func lockKey(env string) string {
	return fmt.Sprintf(lockKeyFormat, env)
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		closeAll(logg, dbClient, nil)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		closeAll(logg, dbClient, nil)
		os.Exit(1)
	}
	defer closeAll(logg, dbClient, redisClient)

	registry := prometheus.NewRegistry()
	cronMetrics := metrics.NewCronJobMetrics(registry)
	billingMetrics := metrics.NewBillingMetrics(registry)

	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), 0)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		closeAll(logg, dbClient, redisClient)
		os.Exit(1)
	}

	expiryJob, err := cron.NewSubscriptionExpiryJob(cron.SubscriptionExpiryJobParams{
		Logger:        logg,
		Subscriptions: subscriptions.NewRepository(dbClient.DB()),
		Metrics:       billingMetrics,
		BatchSize:     cfg.Cron.ExpiryBatch,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscription expiry job", err)
		closeAll(logg, dbClient, redisClient)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(expiryJob),
		Lock:     lock,
		Metrics:  cronMetrics,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		closeAll(logg, dbClient, redisClient)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		closeAll(logg, dbClient, redisClient)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func closeAll(logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client) {
	var closeErr error
	if dbClient != nil {
		closeErr = multierr.Append(closeErr, dbClient.Close())
	}
	if redisClient != nil {
		closeErr = multierr.Append(closeErr, redisClient.Close())
	}
	if closeErr != nil {
		logg.Error(context.Background(), "error closing clients", closeErr)
	}
}
