package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/gkishore1002/TradeFlow-BE/docs"
	"github.com/gkishore1002/TradeFlow-BE/internal/config"
	"github.com/gkishore1002/TradeFlow-BE/internal/infra/auth"
	"github.com/gkishore1002/TradeFlow-BE/internal/infra/db"
	applogger "github.com/gkishore1002/TradeFlow-BE/internal/infra/logger"
	"github.com/gkishore1002/TradeFlow-BE/internal/infra/media"
	"github.com/gkishore1002/TradeFlow-BE/internal/infra/push"
	"github.com/gkishore1002/TradeFlow-BE/internal/infra/repository"
	httptransport "github.com/gkishore1002/TradeFlow-BE/internal/transport/http"
	"github.com/gkishore1002/TradeFlow-BE/internal/usecase"
)

// @title TradeFlow API
// @version 1.0
// @description Personal trading journal: strategies, analyses, trades, trade logs, notifications, and performance statistics.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	rootCtx := context.Background()

	applogger.Init("info")
	logger := applogger.Logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	applogger.Init(cfg.Logging.Level)
	logger = applogger.Logger
	logger.Info().Str("level", cfg.Logging.Level).Msg("logger initialized")

	logger.Info().Str("dsn", maskDSN(cfg.Database.DSN)).Msg("connecting to database")
	gormDB, err := db.Connect(rootCtx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("underlying sql db")
	}
	defer sqlDB.Close()

	if err := db.ApplyMigrations(rootCtx, gormDB); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}
	logger.Info().Msg("migrations applied")

	userRepo, err := repository.NewGormUserRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init user repository")
	}
	strategyRepo, err := repository.NewGormStrategyRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init strategy repository")
	}
	analysisRepo, err := repository.NewGormAnalysisRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init analysis repository")
	}
	tradeRepo, err := repository.NewGormTradeRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init trade repository")
	}
	tradeLogRepo, err := repository.NewGormTradeLogRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init trade log repository")
	}
	notificationRepo, err := repository.NewGormNotificationRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init notification repository")
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("init token manager")
	}

	mediaClient, err := media.NewClient(cfg.Media.BaseURL, cfg.Media.APIKey)
	if err != nil {
		logger.Fatal().Err(err).Msg("init media client")
	}

	hub := push.NewHub(logger)

	notificationService, err := usecase.NewNotificationService(notificationRepo, userRepo, hub, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init notification service")
	}
	authService, err := usecase.NewAuthService(userRepo, tokens, mediaClient, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init auth service")
	}
	journalService, err := usecase.NewJournalService(strategyRepo, analysisRepo, tradeRepo, tradeLogRepo, mediaClient, notificationService, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init journal service")
	}
	statsService, err := usecase.NewStatsService(tradeLogRepo, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("init stats service")
	}

	logger.Info().Msg("all services initialized")

	router, err := httptransport.New(httptransport.Config{
		BodyLimit:     cfg.Server.MaxUploadSize,
		Auth:          authService,
		Journal:       journalService,
		Stats:         statsService,
		Notifications: notificationService,
		Tokens:        tokens,
		Hub:           hub,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init router")
	}

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info().Str("addr", addr).Msg("server listening")
		serverErr <- router.App().Listen(addr)
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal().Err(err).Msg("fiber server error")
		}
	case sig := <-signalCh:
		logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.App().ShutdownWithContext(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		logger.Info().Msg("server shutdown complete")
	}
}

func maskDSN(dsn string) string {
	if len(dsn) > 20 {
		return dsn[:10] + "***" + dsn[len(dsn)-10:]
	}
	return "***"
}
