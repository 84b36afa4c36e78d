package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"skillfund/internal/adapter/repo"
	"skillfund/internal/directory"
	"skillfund/internal/domain"
	"skillfund/internal/events"
	eventskafka "skillfund/internal/events/kafka"
	"skillfund/internal/http/handlers"
	"skillfund/internal/http/httpapi"
	"skillfund/internal/infra"
	"skillfund/internal/infra/geoip"
	"skillfund/internal/invest"
	"skillfund/internal/ledger"
	mw "skillfund/internal/middleware"
	"skillfund/internal/portfolio"
	"skillfund/internal/session"
	"skillfund/internal/storage/memory"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	var (
		learners      domain.LearnerRepository
		investments   domain.InvestmentRepository
		notifications domain.NotificationRepository
		forum         domain.ForumRepository
	)
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		learners = repo.NewLearnerRepository(dbpool)
		investments = repo.NewInvestmentRepository(dbpool)
		notifications = repo.NewNotificationRepository(dbpool)
		forum = repo.NewForumRepository(dbpool)
	} else {
		store := memory.NewStore()
		learners, investments, notifications = store, store, store
		forum = memory.Forum{Store: store}
		logger.Warn().Msg("DATABASE_URL not set, using in-memory store")
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := eventskafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka publisher enabled")
	}

	var lookup mw.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	} else if resolver != nil {
		lookup = resolver.CountryCode
	}

	fundingLedger := ledger.New(learners, investments)
	app := &handlers.App{
		Directory:     directory.NewService(learners),
		Recorder:      invest.NewRecorder(fundingLedger, publisher, logger),
		Portfolio:     portfolio.NewAggregator(investments, portfolio.FlatRate(cfg.ReturnRate)),
		Learners:      learners,
		Notifications: notifications,
		Forum:         forum,
		Sessions:      session.NewStore(),
		Logger:        logger,
	}

	router := httpapi.NewRouter(app, logger, httpapi.Options{
		AllowedOrigins:  cfg.AllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CountryLookup:   lookup,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
