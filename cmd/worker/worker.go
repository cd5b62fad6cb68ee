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
	"Opora/internal/service"
	"Opora/pkg/logger"
	"Opora/pkg/metrics"
	"Opora/pkg/snowflake"
	"Opora/pkg/telegram"
	"Opora/storage"
	"Opora/storage/database"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := telegram.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize Telegram client", zap.Error(err))
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize business metrics", zap.Error(err))
	}

	db := database.DB()
	daily := service.NewDailyService(
		repository.NewUserRepo(db),
		repository.NewPracticeRepo(db),
		cache.Markers{},
		telegram.GetClient(),
		nil, // worker 只消费，不发布
	)

	queue.SetDailyService(daily)

	logger.Logger.Info("Worker service starting",
		zap.String("service", "opora-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 启动所有的消费者部分
	if err := queue.StartAllConsumers(ctx); err != nil {
		logger.Logger.Error("Consumer exited with error", zap.Error(err))
	}

	logger.Logger.Info("Worker service shutting down gracefully")
}
