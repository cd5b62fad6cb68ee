package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"Opora/internal/model"
)

// UserRepo 用户仓储
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert 写入或更新用户资料，返回是否为新用户
func (r *UserRepo) Upsert(ctx context.Context, user *model.User) (bool, error) {
	var existing model.User
	err := r.db.WithContext(ctx).First(&existing, "telegram_id = ?", user.TelegramID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	updates := map[string]interface{}{
		"first_name": user.FirstName,
		"username":   user.Username,
		"updated_at": time.Now(),
	}
	if err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("telegram_id = ?", user.TelegramID).
		Updates(updates).Error; err != nil {
		return false, err
	}
	return false, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).First(&user, "telegram_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateDailySettings 更新推送开关与时区覆盖
func (r *UserRepo) UpdateDailySettings(ctx context.Context, userID int64, enabled bool, timezone *string) error {
	updates := map[string]interface{}{
		"daily_enabled": enabled,
		"updated_at":    time.Now(),
	}
	if timezone != nil {
		updates["timezone"] = *timezone
	}

	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("telegram_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddPoints 原子加分并返回新总分，数据库侧串行化并发写
func (r *UserRepo) AddPoints(ctx context.Context, userID int64, delta int) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Raw(
		"UPDATE users SET points = points + ?, updated_at = now() WHERE telegram_id = ? RETURNING points",
		delta, userID,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ListDailyEnabled 取所有开启推送且当日尚未送达的用户
func (r *UserRepo) ListDailyEnabled(ctx context.Context, date time.Time) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("daily_enabled = ?", true).
		Where("last_daily_sent IS NULL OR last_daily_sent < ?", date.Format("2006-01-02")).
		Order("telegram_id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// SetLastDailySent 记录当日推送成功
func (r *UserRepo) SetLastDailySent(ctx context.Context, userID int64, date time.Time) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("telegram_id = ?", userID).
		Updates(map[string]interface{}{
			"last_daily_sent": date.Format("2006-01-02"),
			"updated_at":      time.Now(),
		}).Error
}
