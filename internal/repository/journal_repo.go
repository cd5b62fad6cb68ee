package repository

import (
	"context"

	"gorm.io/gorm"

	"Opora/internal/model"
)

// JournalRepo 日记仓储，只追加
type JournalRepo struct {
	db *gorm.DB
}

func NewJournalRepo(db *gorm.DB) *JournalRepo {
	return &JournalRepo{db: db}
}

func (r *JournalRepo) Insert(ctx context.Context, entry *model.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *JournalRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.JournalEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
