package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Opora/internal/model"
)

// ChecklistRepo 清单仓储
type ChecklistRepo struct {
	db *gorm.DB
}

func NewChecklistRepo(db *gorm.DB) *ChecklistRepo {
	return &ChecklistRepo{db: db}
}

func (r *ChecklistRepo) ListChecklists(ctx context.Context) ([]model.Checklist, error) {
	var checklists []model.Checklist
	err := r.db.WithContext(ctx).Order("code").Find(&checklists).Error
	if err != nil {
		return nil, err
	}
	return checklists, nil
}

func (r *ChecklistRepo) ListItems(ctx context.Context, checklistCode string) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	err := r.db.WithContext(ctx).
		Where("checklist_code = ?", checklistCode).
		Order("order_index").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ChecklistRepo) GetItem(ctx context.Context, itemID int64) (*model.ChecklistItem, error) {
	var item model.ChecklistItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetProgress 取用户在一组条目上的勾选状态
func (r *ChecklistRepo) GetProgress(ctx context.Context, userID int64, itemIDs []int64) (map[int64]bool, error) {
	done := make(map[int64]bool, len(itemIDs))
	if len(itemIDs) == 0 {
		return done, nil
	}

	var rows []model.ChecklistProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id IN ?", userID, itemIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		done[row.ItemID] = row.Done
	}
	return done, nil
}

// Toggle 翻转勾选状态，首次勾选插入 done=true，返回翻转后的状态
func (r *ChecklistRepo) Toggle(ctx context.Context, userID, itemID int64) (bool, error) {
	progress := model.ChecklistProgress{
		UserID: userID,
		ItemID: itemID,
		Done:   true,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"done":       gorm.Expr("NOT user_checklist_progress.done"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&progress).Error
	if err != nil {
		return false, err
	}

	var row model.ChecklistProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&row).Error; err != nil {
		return false, err
	}
	return row.Done, nil
}
