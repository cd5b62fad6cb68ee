package model

import "time"

// JournalEntry 日记条目，只追加
type JournalEntry struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64          `gorm:"not null;index:idx_journal_user" json:"user_id"`
	State     EmotionalState `gorm:"type:varchar(16);not null" json:"state"`
	Note      *string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
