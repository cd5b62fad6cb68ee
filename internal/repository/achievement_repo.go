package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Opora/internal/model"
)

// AchievementRepo 成就仓储
type AchievementRepo struct {
	db *gorm.DB
}

func NewAchievementRepo(db *gorm.DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// Grant 条件插入，唯一约束保证同一成就只授予一次
// Inserted=false 表示此前已获得，调用方不得重复发奖励
func (r *AchievementRepo) Grant(ctx context.Context, userID int64, code string) (model.GrantResult, error) {
	ua := model.UserAchievement{
		UserID: userID,
		Code:   code,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "code"}},
		DoNothing: true,
	}).Create(&ua)
	if result.Error != nil {
		return model.GrantResult{}, result.Error
	}

	return model.GrantResult{
		Code:     code,
		Inserted: result.RowsAffected > 0,
	}, nil
}

// ListByUser 取用户已获成就定义，按获得时间排序
func (r *AchievementRepo) ListByUser(ctx context.Context, userID int64) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.db.WithContext(ctx).
		Model(&model.Achievement{}).
		Joins("JOIN user_achievements ON user_achievements.code = achievements.code").
		Where("user_achievements.user_id = ?", userID).
		Order("user_achievements.earned_at").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

func (r *AchievementRepo) GetByCode(ctx context.Context, code string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.db.WithContext(ctx).First(&achievement, "code = ?", code).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &achievement, nil
}
