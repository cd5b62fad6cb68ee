package cache

import (
	"context"
	"fmt"
	"time"

	"Opora/storage/redis"
)

const (
	// 用于每日批次状态，scheduler 防止同日重发，worker 消费去重
	dailyScheduledPrefix   = "daily:scheduled"
	messageProcessedPrefix = "message:processed"

	scheduledTTL = 48 * time.Hour
	processedTTL = 48 * time.Hour
)

// IsDailyScheduled 检查指定日期的批次是否已发布
func IsDailyScheduled(ctx context.Context, date string) (bool, error) {
	key := redis.Key(dailyScheduledPrefix, date)
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check daily scheduled status: %w", err)
	}
	return result > 0, nil
}

// MarkDailyScheduled 标记指定日期的批次已发布
func MarkDailyScheduled(ctx context.Context, date string) error {
	key := redis.Key(dailyScheduledPrefix, date)
	return redis.Client().Set(ctx, key, "1", scheduledTTL).Err()
}

// UnmarkDailyScheduled 清除已发布标记（发布失败时调用，允许下个 tick 重试）
func UnmarkDailyScheduled(ctx context.Context, date string) error {
	key := redis.Key(dailyScheduledPrefix, date)
	return redis.Client().Del(ctx, key).Err()
}

// TryMarkMessageProcessing 尝试原子标记消息正在处理（SETNX）
// 返回 true 表示首次处理，false 表示重复消息或正在处理
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// UnmarkMessageProcessing 取消处理标记（处理失败时调用，允许重投）
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed 标记消息已处理完成
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}

// Markers 把包级 redis 标记函数打包成一个值，供 DailyService 注入
type Markers struct{}

func (Markers) IsDailyScheduled(ctx context.Context, date string) (bool, error) {
	return IsDailyScheduled(ctx, date)
}

func (Markers) MarkDailyScheduled(ctx context.Context, date string) error {
	return MarkDailyScheduled(ctx, date)
}

func (Markers) UnmarkDailyScheduled(ctx context.Context, date string) error {
	return UnmarkDailyScheduled(ctx, date)
}

func (Markers) TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	return TryMarkMessageProcessing(ctx, messageID, ttl)
}

func (Markers) UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	return UnmarkMessageProcessing(ctx, messageID)
}

func (Markers) MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	return MarkMessageProcessed(ctx, messageID, ttl)
}
