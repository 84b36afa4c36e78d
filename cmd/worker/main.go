package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"skillfund/internal/adapter/repo"
	eventskafka "skillfund/internal/events/kafka"
	"skillfund/internal/infra"
	"skillfund/internal/milestone"
)

const consumerGroup = "skillfund-milestones"

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if len(cfg.KafkaBrokers) == 0 {
		logger.Fatal().Msg("worker: KAFKA_BROKERS is required")
	}
	if cfg.DatabaseURL == "" {
		logger.Fatal().Msg("worker: DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	consumer := eventskafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
	defer consumer.Close()

	notifier := milestone.NewNotifier(
		repo.NewLearnerRepository(pool),
		repo.NewNotificationRepository(pool),
		logger,
	)

	logger.Info().Str("group", consumerGroup).Msg("worker: started")
	// A handler error stops the run without committing the offset; the
	// supervisor restarts the process and the group redelivers the event.
	if err := consumer.Run(ctx, notifier.HandleInvestmentRecorded); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}
