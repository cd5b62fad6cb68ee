package model

import "time"

// User 用户模型，主键为 Telegram 用户 id

type User struct {
	TelegramID int64  `gorm:"primaryKey" json:"telegram_id"`
	FirstName  string `gorm:"type:varchar(128);not null;default:''" json:"first_name"`
	Username   string `gorm:"type:varchar(64);not null;default:''" json:"username"`

	// 积分只增不减
	Points int `gorm:"not null;default:0" json:"points"`

	// 每日推送设置
	DailyEnabled  bool       `gorm:"not null;default:true" json:"daily_enabled"`
	Timezone      *string    `gorm:"type:varchar(64)" json:"timezone,omitempty"` // 覆盖全局时区，可空
	LastDailySent *time.Time `gorm:"type:date" json:"last_daily_sent,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
