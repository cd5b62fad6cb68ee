package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"Opora/config"
	"Opora/internal/cache"
	"Opora/internal/queue"
	"Opora/internal/repository"
	"Opora/internal/schedule"
	"Opora/internal/service"
	"Opora/pkg/logger"
	"Opora/pkg/snowflake"
	"Opora/storage"
	"Opora/storage/database"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	db := database.DB()
	daily := service.NewDailyService(
		repository.NewUserRepo(db),
		repository.NewPracticeRepo(db),
		cache.Markers{},
		nil, // scheduler 只发布批次，不投递
		queue.PublishDailyPractice,
	)

	scheduler, err := schedule.NewDailyScheduler(daily)
	if err != nil {
		logger.Logger.Fatal("Failed to create daily scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "opora-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	if err := scheduler.Run(ctx); err != nil && err != context.Canceled {
		logger.Logger.Error("Scheduler loop exited with error", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service shutting down gracefully")
}
