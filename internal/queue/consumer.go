package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"Opora/internal/model"
	"Opora/internal/service"
	errs "Opora/pkg/errors"
	"Opora/pkg/logger"
	"Opora/storage/mq"
)

var dailyService *service.DailyService

// SetDailyService 设置每日投递服务（在 worker 启动时调用）
func SetDailyService(s *service.DailyService) {
	dailyService = s
}

// StartDailyPracticeConsumer 启动每日练习批次消费者，阻塞直到通道关闭
func StartDailyPracticeConsumer(ctx context.Context) error {
	if dailyService == nil {
		return fmt.Errorf("daily service not set, call SetDailyService first")
	}

	handler := func(body []byte) error {
		var msg model.DailyPracticeMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			// 消息体坏了，重投也没用
			logger.Logger.Error("Failed to unmarshal daily practice message", zap.Error(err))
			return nil
		}

		logger.Logger.Info("Processing daily practice batch",
			zap.String("message_id", msg.MessageID),
			zap.String("batch_id", msg.BatchID),
			zap.String("date", msg.Date),
			zap.Int("user_count", len(msg.UserIDs)),
		)

		err := dailyService.ProcessDailyBatch(ctx, &msg)

		var skip *errs.SkipMessageError
		if errors.As(err, &skip) {
			logger.Logger.Info("Skipping daily practice message",
				zap.String("message_id", msg.MessageID),
				zap.String("reason", skip.Reason),
			)
			return nil
		}

		return err
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         service.DailyQueue,
		Exchange:      service.DailyExchange,
		RoutingKey:    service.DailyRoutingKey,
		ConsumerTag:   "daily-practice-worker",
		PrefetchCount: 1,
		Handler:       handler,
	})
}

// StartAllConsumers 启动全部消费者
func StartAllConsumers(ctx context.Context) error {
	return StartDailyPracticeConsumer(ctx)
}
