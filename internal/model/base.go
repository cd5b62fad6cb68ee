package model

import (
	"time"

	"gorm.io/gorm"
)

// BaseModel 自增主键加时间戳，内容类模型共用
type BaseModel struct {
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
}
