package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eaglebank/moneybox/shared/events"
	"github.com/eaglebank/moneybox/shared/logging"
	"github.com/eaglebank/moneybox/shared/models"
	redisClient "github.com/eaglebank/moneybox/shared/redis"
	"github.com/eaglebank/moneybox/transfer-service/internal/command"
	"github.com/eaglebank/moneybox/transfer-service/internal/config"
	"github.com/eaglebank/moneybox/transfer-service/internal/notification"
	"github.com/eaglebank/moneybox/transfer-service/internal/query"
	"github.com/eaglebank/moneybox/transfer-service/internal/repository"
	_ "github.com/lib/pq"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1:]); err != nil {
		logFailure(logger, err)
		stop()
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger, args []string) error {
	// Database connection (write store)
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	migrateOnly := len(args) > 0 && args[0] == "migrate"
	if cfg.RunMigrations || migrateOnly {
		if err := repository.Migrate(db, logger); err != nil {
			return err
		}
	}
	if migrateOnly {
		return nil
	}

	// Redis connection (read model store + notification stream)
	redis, err := redisClient.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer redis.Close()

	// --- CQRS wiring ---
	readRepo := repository.NewAccountReadRepository(db, redis.Client, cfg.AccountViewTTL(), logger)
	writeRepo := repository.NewAccountWriteRepository(db, readRepo, logger)

	notifier := notification.NewStreamNotifier(events.NewPublisher(redis.Client), cfg.NotificationStream, logger)

	app := &cli{
		withdraw: command.NewWithdrawMoney(writeRepo, notifier, logger),
		transfer: command.NewTransferMoney(writeRepo, notifier, logger),
		accounts: query.NewAccountQueryService(readRepo),
		out:      os.Stdout,
	}
	return app.run(ctx, args)
}

// logFailure keeps rejected business operations out of the error log.
func logFailure(logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, errUsage):
		logger.Warn("invalid usage", zap.Error(err))
	case models.IsDomainViolation(err), errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrSameAccount), errors.Is(err, models.ErrAccountNotFound):
		logger.Warn("operation rejected", zap.Error(err))
	default:
		logger.Error("operation failed", zap.Error(err))
	}
}
