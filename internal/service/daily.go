package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
	"Opora/pkg/logger"
	"Opora/pkg/metrics"
	"Opora/pkg/snowflake"
	"Opora/pkg/telegram"
	"Opora/utils"
)

const (
	// DailyExchange 每日批次走的 exchange / routing key / queue
	DailyExchange   = "scheduler.topic"
	DailyRoutingKey = "daily.practice"
	DailyQueue      = "daily_practice_queue"

	dailyTextPrefix = "🎲 Практика дня\n\n"

	processedMarkerTTL = 48 * time.Hour
)

// PublishFunc 每日批次发布函数，生产实现为 queue.PublishDailyPractice
type PublishFunc func(msg model.DailyPracticeMessage) error

// DailyService 每日练习推送：scheduler 侧发批次，worker 侧投递
type DailyService struct {
	users     UserStore
	practices PracticeStore
	markers   DailyMarkers
	deliverer telegram.Client
	publish   PublishFunc

	rnd func(n int) int
	now func() time.Time
}

func NewDailyService(
	users UserStore,
	practices PracticeStore,
	markers DailyMarkers,
	deliverer telegram.Client,
	publish PublishFunc,
) *DailyService {
	return &DailyService{
		users:     users,
		practices: practices,
		markers:   markers,
		deliverer: deliverer,
		publish:   publish,
		rnd:       rand.Intn,
		now:       time.Now,
	}
}

// RunDaily 调度一次每日批次；同一日期只发布一次，全体用户共用一次随机抽取
func (s *DailyService) RunDaily(ctx context.Context, firedAt time.Time) error {
	date := utils.DateKey(firedAt)

	scheduled, err := s.markers.IsDailyScheduled(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to check daily marker: %w", err)
	}
	if scheduled {
		logger.Logger.Info("Daily batch already scheduled, skipping",
			zap.String("date", date),
		)
		return nil
	}

	users, err := s.users.ListDailyEnabled(ctx, firedAt)
	if err != nil {
		return fmt.Errorf("failed to list daily users: %w", err)
	}
	if len(users) == 0 {
		logger.Logger.Info("No users enabled for daily practice", zap.String("date", date))
		return nil
	}

	practices, err := s.practices.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list practices: %w", err)
	}
	if len(practices) == 0 {
		logger.Logger.Warn("No active practices, daily batch skipped", zap.String("date", date))
		return nil
	}

	practice := practices[s.rnd(len(practices))]

	userIDs := make([]int64, len(users))
	for i, u := range users {
		userIDs[i] = u.TelegramID
	}

	messageID, err := snowflake.NextID()
	if err != nil {
		return fmt.Errorf("failed to generate message id: %w", err)
	}

	msg := model.DailyPracticeMessage{
		MessageID:  fmt.Sprintf("%d", messageID),
		BatchID:    uuid.NewString(),
		Date:       date,
		PracticeID: practice.ID,
		UserIDs:    userIDs,
	}

	if err := s.markers.MarkDailyScheduled(ctx, date); err != nil {
		return fmt.Errorf("failed to mark daily scheduled: %w", err)
	}

	if err := s.publish(msg); err != nil {
		// 发布失败就撤掉标记，让下一个 tick 重试
		if unmarkErr := s.markers.UnmarkDailyScheduled(ctx, date); unmarkErr != nil {
			logger.Logger.Error("Failed to unmark daily scheduled after publish failure",
				zap.String("date", date),
				zap.Error(unmarkErr),
			)
		}
		return fmt.Errorf("failed to publish daily batch: %w", err)
	}

	if m := metrics.GetMetrics(); m != nil {
		m.RecordDailyBatch(ctx, int64(len(userIDs)))
	}

	logger.Logger.Info("Daily batch published",
		zap.String("date", date),
		zap.String("batch_id", msg.BatchID),
		zap.Int64("practice_id", practice.ID),
		zap.Int("user_count", len(userIDs)),
	)
	return nil
}

// ProcessDailyBatch 消费每日批次：逐用户投递，单个失败不影响其余
func (s *DailyService) ProcessDailyBatch(ctx context.Context, msg *model.DailyPracticeMessage) error {
	first, err := s.markers.TryMarkMessageProcessing(ctx, msg.MessageID, processedMarkerTTL)
	if err != nil {
		return fmt.Errorf("failed to mark message processing: %w", err)
	}
	if !first {
		logger.Logger.Info("Duplicate daily message, skipping",
			zap.String("message_id", msg.MessageID),
			zap.String("batch_id", msg.BatchID),
		)
		return nil
	}

	practice, err := s.practices.GetByID(ctx, msg.PracticeID)
	if err != nil {
		if unmarkErr := s.markers.UnmarkMessageProcessing(ctx, msg.MessageID); unmarkErr != nil {
			logger.Logger.Error("Failed to unmark message processing", zap.Error(unmarkErr))
		}
		return fmt.Errorf("failed to load practice %d: %w", msg.PracticeID, err)
	}
	if practice == nil {
		// 练习已被下架，批次作废
		return &errs.SkipMessageError{
			Reason: fmt.Sprintf("practice %d no longer exists", msg.PracticeID),
		}
	}

	text := dailyTextPrefix + utils.FormatPractice(practice)
	sent, failed := 0, 0

	for _, userID := range msg.UserIDs {
		if delivered := s.deliverOne(ctx, userID, msg.Date, text, msg.BatchID); delivered {
			sent++
		} else {
			failed++
		}
	}

	if err := s.markers.MarkMessageProcessed(ctx, msg.MessageID, processedMarkerTTL); err != nil {
		logger.Logger.Error("Failed to mark message processed",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Daily batch processed",
		zap.String("batch_id", msg.BatchID),
		zap.String("date", msg.Date),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
	return nil
}

// deliverOne 投递单个用户，任何失败都只记录并跳过
func (s *DailyService) deliverOne(ctx context.Context, userID int64, date, text, batchID string) bool {
	start := s.now()

	m := metrics.GetMetrics()
	if m != nil {
		m.AddActiveDelivery(ctx)
		defer m.SubtractActiveDelivery(ctx)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Logger.Error("Failed to load user for daily delivery",
			zap.Int64("user_id", userID),
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
		return false
	}

	// 发布与消费之间设置可能已变，发送前复核
	if user == nil || !user.DailyEnabled {
		return false
	}
	if user.LastDailySent != nil && utils.DateKey(*user.LastDailySent) >= date {
		return false
	}

	if err := s.deliverer.SendMessage(ctx, userID, text); err != nil {
		logger.Logger.Warn("Daily delivery failed, skipping user",
			zap.Int64("user_id", userID),
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
		if m != nil {
			m.RecordDailyDelivered(ctx, "failed", s.now().Sub(start).Seconds())
		}
		return false
	}

	sentAt, err := time.Parse("2006-01-02", date)
	if err != nil {
		sentAt = s.now()
	}
	if err := s.users.SetLastDailySent(ctx, userID, sentAt); err != nil {
		logger.Logger.Error("Failed to record last daily sent",
			zap.Int64("user_id", userID),
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
	}

	if m != nil {
		m.RecordDailyDelivered(ctx, "sent", s.now().Sub(start).Seconds())
	}
	return true
}

