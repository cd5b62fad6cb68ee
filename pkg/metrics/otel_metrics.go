package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics OpenTelemetry 指标集合
type OTelMetrics struct {
	// 练习相关指标
	PracticeCompletedTotal  metric.Int64Counter
	AchievementGrantedTotal metric.Int64Counter
	JournalEntriesTotal     metric.Int64Counter

	// 每日推送相关指标
	DailyDeliveredTotal    metric.Int64Counter
	DailyDeliveryDuration  metric.Float64Histogram
	DailyBatchSize         metric.Int64Histogram
	DailyActiveDeliveries  metric.Int64UpDownCounter
}

var (
	// 全局指标实例
	metrics *OTelMetrics

	meter = otel.Meter("opora")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	metrics = &OTelMetrics{}

	metrics.PracticeCompletedTotal, err = meter.Int64Counter(
		"practice_completed_total",
		metric.WithDescription("Total number of completed practices"),
		metric.WithUnit("{practice}"),
	)
	if err != nil {
		return err
	}

	metrics.AchievementGrantedTotal, err = meter.Int64Counter(
		"achievement_granted_total",
		metric.WithDescription("Total number of achievements granted"),
		metric.WithUnit("{achievement}"),
	)
	if err != nil {
		return err
	}

	metrics.JournalEntriesTotal, err = meter.Int64Counter(
		"journal_entries_total",
		metric.WithDescription("Total number of journal entries recorded"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return err
	}

	metrics.DailyDeliveredTotal, err = meter.Int64Counter(
		"daily_delivered_total",
		metric.WithDescription("Total number of daily practice deliveries"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return err
	}

	metrics.DailyDeliveryDuration, err = meter.Float64Histogram(
		"daily_delivery_duration_seconds",
		metric.WithDescription("Time spent delivering a daily practice message"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return err
	}

	metrics.DailyBatchSize, err = meter.Int64Histogram(
		"daily_batch_size",
		metric.WithDescription("Number of recipients per daily batch"),
		metric.WithUnit("{user}"),
	)
	if err != nil {
		return err
	}

	metrics.DailyActiveDeliveries, err = meter.Int64UpDownCounter(
		"daily_active_deliveries",
		metric.WithDescription("Number of in-flight daily deliveries"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// GetMetrics 获取全局指标实例，未初始化时返回 nil（调用方需判空）
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordPracticeCompleted 记录一次练习完成
func (m *OTelMetrics) RecordPracticeCompleted(ctx context.Context, categoryCode string) {
	m.PracticeCompletedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("category", categoryCode),
	))
}

// RecordAchievementGranted 记录一次成就授予
func (m *OTelMetrics) RecordAchievementGranted(ctx context.Context, code string) {
	m.AchievementGrantedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("achievement", code),
	))
}

// RecordJournalEntry 记录一次日记写入
func (m *OTelMetrics) RecordJournalEntry(ctx context.Context, state string) {
	m.JournalEntriesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("state", state),
	))
}

// RecordDailyDelivered 记录一次每日推送结果
func (m *OTelMetrics) RecordDailyDelivered(ctx context.Context, status string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("status", status),
	}

	m.DailyDeliveredTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.DailyDeliveryDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
}

// RecordDailyBatch 记录每日批次规模
func (m *OTelMetrics) RecordDailyBatch(ctx context.Context, size int64) {
	m.DailyBatchSize.Record(ctx, size)
}

// AddActiveDelivery 增加在途推送计数
func (m *OTelMetrics) AddActiveDelivery(ctx context.Context) {
	m.DailyActiveDeliveries.Add(ctx, 1)
}

// SubtractActiveDelivery 减少在途推送计数
func (m *OTelMetrics) SubtractActiveDelivery(ctx context.Context) {
	m.DailyActiveDeliveries.Add(ctx, -1)
}
