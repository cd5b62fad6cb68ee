package model

import "time"

// Checklist 清单
type Checklist struct {
	Code  string `gorm:"primaryKey;type:varchar(32)" json:"code"`
	Title string `gorm:"type:varchar(128);not null" json:"title"`
}

func (Checklist) TableName() string {
	return "checklists"
}

// ChecklistItem 清单条目
type ChecklistItem struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ChecklistCode string `gorm:"type:varchar(32);not null;index:idx_checklist_items_code" json:"checklist_code"`
	Title         string `gorm:"type:varchar(256);not null" json:"title"`
	OrderIndex    int    `gorm:"not null;default:0" json:"order_index"`
}

func (ChecklistItem) TableName() string {
	return "checklist_items"
}

// ChecklistProgress 用户勾选状态，(user_id, item_id) 唯一，last-write-wins
type ChecklistProgress struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uidx_checklist_progress" json:"user_id"`
	ItemID    int64     `gorm:"not null;uniqueIndex:uidx_checklist_progress" json:"item_id"`
	Done      bool      `gorm:"not null;default:false" json:"done"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ChecklistProgress) TableName() string {
	return "user_checklist_progress"
}
