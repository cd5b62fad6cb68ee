package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Category 练习分类
type Category struct {
	Code  string `gorm:"primaryKey;type:varchar(32)" json:"code"`
	Title string `gorm:"type:varchar(128);not null" json:"title"`
}

func (Category) TableName() string {
	return "categories"
}

// Practice 练习内容
type Practice struct {
	BaseModel
	CategoryCode string         `gorm:"type:varchar(32);not null;index:idx_practices_category" json:"category_code"`
	Title        string         `gorm:"type:varchar(128);not null" json:"title"`
	Description  string         `gorm:"type:text;not null;default:''" json:"description"`
	Steps        datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"steps"`
	TimerSeconds *int           `json:"timer_seconds,omitempty"`
	IsActive     bool           `gorm:"not null;default:true;index:idx_practices_active" json:"is_active"`
}

func (Practice) TableName() string {
	return "practices"
}

// StepList 解析 steps JSONB 为字符串切片，解析失败时返回空切片
func (p *Practice) StepList() []string {
	if len(p.Steps) == 0 {
		return nil
	}

	var steps []string
	if err := json.Unmarshal(p.Steps, &steps); err != nil {
		return nil
	}
	return steps
}
