package model

import "time"

// CompletionRecord 练习完成日志，只追加
type CompletionRecord struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;index:idx_practice_log_user" json:"user_id"`
	PracticeID  int64     `gorm:"not null" json:"practice_id"`
	PerformedAt time.Time `gorm:"not null;default:now();index:idx_practice_log_performed" json:"performed_at"`
}

func (CompletionRecord) TableName() string {
	return "user_practice_log"
}
