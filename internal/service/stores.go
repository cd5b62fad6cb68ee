package service

import (
	"context"
	"time"

	"Opora/internal/model"
)

// 服务层只依赖窄接口，repository 提供 gorm 实现，测试里用内存假实现

type UserStore interface {
	Upsert(ctx context.Context, user *model.User) (bool, error)
	GetByID(ctx context.Context, userID int64) (*model.User, error)
	UpdateDailySettings(ctx context.Context, userID int64, enabled bool, timezone *string) error
	AddPoints(ctx context.Context, userID int64, delta int) (int, error)
	ListDailyEnabled(ctx context.Context, date time.Time) ([]model.User, error)
	SetLastDailySent(ctx context.Context, userID int64, date time.Time) error
}

type PracticeStore interface {
	GetByID(ctx context.Context, id int64) (*model.Practice, error)
	ListActive(ctx context.Context) ([]model.Practice, error)
	ListActiveByCategory(ctx context.Context, categoryCode string) ([]model.Practice, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, code string) (*model.Category, error)
}

type JournalStore interface {
	Insert(ctx context.Context, entry *model.JournalEntry) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type CompletionStore interface {
	Insert(ctx context.Context, rec *model.CompletionRecord) error
	CountByUser(ctx context.Context, userID int64) (int64, error)
	ListSince(ctx context.Context, userID int64, since time.Time) ([]model.CompletionRecord, error)
}

type ChecklistStore interface {
	ListChecklists(ctx context.Context) ([]model.Checklist, error)
	ListItems(ctx context.Context, checklistCode string) ([]model.ChecklistItem, error)
	GetItem(ctx context.Context, itemID int64) (*model.ChecklistItem, error)
	GetProgress(ctx context.Context, userID int64, itemIDs []int64) (map[int64]bool, error)
	Toggle(ctx context.Context, userID, itemID int64) (bool, error)
}

type AchievementStore interface {
	Grant(ctx context.Context, userID int64, code string) (model.GrantResult, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Achievement, error)
	GetByCode(ctx context.Context, code string) (*model.Achievement, error)
}

// DailyMarkers 每日批次的幂等标记，生产实现基于 redis（internal/cache）
type DailyMarkers interface {
	IsDailyScheduled(ctx context.Context, date string) (bool, error)
	MarkDailyScheduled(ctx context.Context, date string) error
	UnmarkDailyScheduled(ctx context.Context, date string) error
	TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error)
	UnmarkMessageProcessing(ctx context.Context, messageID string) error
	MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error
}
