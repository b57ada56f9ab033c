package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/smarttutor/backend/internal/api"
	"github.com/smarttutor/backend/internal/app"
	"github.com/smarttutor/backend/internal/config"
	"github.com/smarttutor/backend/internal/notify"
	"github.com/smarttutor/backend/internal/repository"
	"github.com/smarttutor/backend/internal/service"
	"github.com/smarttutor/backend/internal/service/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to reach database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)

	var notifier ports.Notifier
	if cfg.SendgridAPIKey != "" {
		notifier = notify.NewEmailNotifier(cfg.SendgridAPIKey, cfg.EmailFromName, cfg.EmailFrom, userRepo, logger)
	} else {
		logger.Info("no sendgrid key configured, logging notifications to console")
		notifier = notify.NewConsoleNotifier(userRepo, logger)
	}

	bookingService := service.NewBookingService(bookingRepo, userRepo, serviceRepo, notifier, logger)
	userService := service.NewUserService(userRepo, logger)
	catalogService := service.NewCatalogService(serviceRepo, logger)

	scheduler := app.NewScheduler(bookingService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := api.NewServer(cfg.JWTSecret, logger, bookingService, userService, catalogService)

	go func() {
		logger.Info("starting http server",
			zap.String("addr", cfg.Addr),
			zap.String("environment", cfg.Environment),
		)
		if err := server.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
