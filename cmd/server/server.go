package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	otelapi "go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"Opora/config"
	"Opora/internal/handler"
	"Opora/internal/middleware"
	"Opora/internal/repository"
	"Opora/internal/router"
	"Opora/internal/service"
	"Opora/pkg/logger"
	"Opora/pkg/metrics"
	"Opora/pkg/otel"
	"Opora/pkg/snowflake"
	"Opora/pkg/token"
	"Opora/storage"
	"Opora/storage/database"
)

func main() {
	// 日志部分
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

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// OpenTelemetry
	shutdownOtel, err := otel.InitOpenTelemetry(ctx, otel.Config{
		ServiceName:    config.Cfg.ServiceName,
		ServiceVersion: "1.0.0",
		Environment:    config.Cfg.Environment,
		OTLPEndpoint:   config.Cfg.OTLPEndpoint,
		SampleRatio:    config.Cfg.SampleRatio,
	})
	if err != nil {
		logger.Logger.Warn("Failed to initialize OpenTelemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownOtel(context.Background()); err != nil {
				logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
			}
		}()
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize business metrics", zap.Error(err))
	}
	if err := middleware.InitMetrics(otelapi.Meter("hertz-server")); err != nil {
		logger.Logger.Warn("Failed to initialize HTTP metrics", zap.Error(err))
	}

	if err := token.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize token package", zap.Error(err))
	} // token 在中间件前初始化，middleware 依赖 token

	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	// 装配仓储、服务与 handler
	db := database.DB()
	userRepo := repository.NewUserRepo(db)
	practiceRepo := repository.NewPracticeRepo(db)
	journalRepo := repository.NewJournalRepo(db)
	completionRepo := repository.NewCompletionRepo(db)
	checklistRepo := repository.NewChecklistRepo(db)
	achievementRepo := repository.NewAchievementRepo(db)

	matcher := service.NewMatcherService(practiceRepo)
	flow := service.NewFlowService(matcher, time.Duration(config.Cfg.FlowSessionTTLMinutes)*time.Minute)
	gamification := service.NewGamificationService(
		userRepo, practiceRepo, completionRepo, journalRepo, achievementRepo, matcher)
	users := service.NewUserService(userRepo)
	checklists := service.NewChecklistService(checklistRepo, userRepo)
	library := service.NewLibraryService(practiceRepo, matcher)

	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(),
		User:      handler.NewUserHandler(users, gamification),
		State:     handler.NewStateHandler(matcher, flow),
		Flow:      handler.NewFlowHandler(flow),
		Practice:  handler.NewPracticeHandler(library, gamification),
		Checklist: handler.NewChecklistHandler(checklists),
		Journal:   handler.NewJournalHandler(gamification),
		Minigame:  handler.NewMinigameHandler(gamification),
	}

	logger.Logger.Info("Server starting",
		zap.String("service", config.Cfg.ServiceName),
		zap.String("port", config.Cfg.ServerPort),
		zap.String("environment", config.Cfg.Environment),
	)

	addr := net.JoinHostPort(config.Cfg.ServerHost, config.Cfg.ServerPort)
	h := server.Default(server.WithHostPorts(addr))

	router.Register(h, handlers)

	// 优雅关闭：在单独的 goroutine 中监听关闭信号并调用 Shutdown
	go func() {
		<-ctx.Done()
		logger.Logger.Info("Initiating graceful shutdown...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := h.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
