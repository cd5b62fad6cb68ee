package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Opora/internal/model"
)

// CompletionRepo 练习完成日志仓储，只追加
type CompletionRepo struct {
	db *gorm.DB
}

func NewCompletionRepo(db *gorm.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

func (r *CompletionRepo) Insert(ctx context.Context, rec *model.CompletionRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *CompletionRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CompletionRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// ListSince 取某时刻之后的完成记录，用于连续天数计算
func (r *CompletionRepo) ListSince(ctx context.Context, userID int64, since time.Time) ([]model.CompletionRecord, error) {
	var records []model.CompletionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND performed_at >= ?", userID, since).
		Order("performed_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
