package model

import "time"

// Achievement 成就定义
type Achievement struct {
	Code        string `gorm:"primaryKey;type:varchar(32)" json:"code"`
	Title       string `gorm:"type:varchar(128);not null" json:"title"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
}

func (Achievement) TableName() string {
	return "achievements"
}

// UserAchievement 用户已获成就，(user_id, code) 唯一，永不回收
type UserAchievement struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64     `gorm:"not null;uniqueIndex:uidx_user_achievements" json:"user_id"`
	Code     string    `gorm:"type:varchar(32);not null;uniqueIndex:uidx_user_achievements" json:"code"`
	EarnedAt time.Time `gorm:"not null;default:now()" json:"earned_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

// GrantResult 条件插入结果
type GrantResult struct {
	Code     string `json:"code"`
	Inserted bool   `json:"inserted"` // false 表示此前已获得
}
