package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tourbeau/tourbot/internal/app"
	"github.com/tourbeau/tourbot/internal/config"
	"github.com/tourbeau/tourbot/internal/controller"
	"github.com/tourbeau/tourbot/internal/controller/state"
	"github.com/tourbeau/tourbot/internal/repository"
	"github.com/tourbeau/tourbot/internal/server"
	"github.com/tourbeau/tourbot/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(pool)
	tripRepo := repository.NewTripRepository(pool)

	photoFetcher := service.NewProfilePhotoFetcher(botInstance, logger)
	userService := service.NewUserService(userRepo, photoFetcher, logger)
	tripService := service.NewTripService(tripRepo, logger)

	sessions := state.NewManager()

	botController := controller.NewBotController(botInstance, cfg, userService, sessions, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register bot handlers", zap.Error(err))
	}

	srv := server.New(cfg.HTTPAddr, userService, tripService, userRepo, cfg.WebAppURL, logger)

	scheduler := app.NewScheduler(sessions, cfg.SessionTTL, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
			cancel()
		}
	}()

	logger.Info("Starting tourbot",
		zap.String("environment", cfg.Environment),
		zap.String("mode", string(cfg.Mode)),
		zap.String("http_addr", cfg.HTTPAddr))

	botController.Start(ctx)

	logger.Info("Shutdown complete")
}
