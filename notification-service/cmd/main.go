package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eaglebank/moneybox/notification-service/internal/config"
	"github.com/eaglebank/moneybox/notification-service/internal/dispatcher"
	"github.com/eaglebank/moneybox/shared/events"
	"github.com/eaglebank/moneybox/shared/logging"
	redisClient "github.com/eaglebank/moneybox/shared/redis"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(logging.Environment(cfg.AppEnv), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redis, err := redisClient.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redis.Close()

	d := dispatcher.NewDispatcher(
		dispatcher.NewSentLedger(redis.Client, cfg.DedupeTTL(), logger),
		dispatcher.NewLogSender(logger),
		logger,
	)

	subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
		Group:         cfg.NotifierGroup,
		Consumer:      cfg.NotifierConsumer,
		Stream:        cfg.NotificationStream,
		Handler:       d.HandleEvent,
		BatchSize:     cfg.NotifierBatchSize,
		BlockDuration: cfg.BlockDuration(),
		Logger:        logger,
	})

	logger.Info("notification service starting")
	if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("subscriber stopped", zap.Error(err))
	}
	logger.Info("shutting down")
}
