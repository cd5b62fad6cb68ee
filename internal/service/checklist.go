package service

import (
	"context"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
)

// ChecklistView 带勾选状态的清单视图
type ChecklistView struct {
	Checklist model.Checklist
	Items     []model.ChecklistItem
	Done      map[int64]bool
}

// ChecklistService 清单与勾选
type ChecklistService struct {
	store ChecklistStore
	users UserStore
}

func NewChecklistService(store ChecklistStore, users UserStore) *ChecklistService {
	return &ChecklistService{store: store, users: users}
}

// List 取全部清单及用户勾选状态
func (s *ChecklistService) List(ctx context.Context, userID int64) ([]ChecklistView, error) {
	checklists, err := s.store.ListChecklists(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]ChecklistView, 0, len(checklists))
	for _, checklist := range checklists {
		items, err := s.store.ListItems(ctx, checklist.Code)
		if err != nil {
			return nil, err
		}

		itemIDs := make([]int64, len(items))
		for i, item := range items {
			itemIDs[i] = item.ID
		}

		done, err := s.store.GetProgress(ctx, userID, itemIDs)
		if err != nil {
			return nil, err
		}

		views = append(views, ChecklistView{
			Checklist: checklist,
			Items:     items,
			Done:      done,
		})
	}
	return views, nil
}

// Toggle 翻转条目勾选状态，返回条目所属清单的最新视图
func (s *ChecklistService) Toggle(ctx context.Context, userID, itemID int64) (*ChecklistView, bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, errs.UserNotFound
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, false, err
	}
	if item == nil {
		return nil, false, errs.ChecklistItemNotFound
	}

	nowDone, err := s.store.Toggle(ctx, userID, itemID)
	if err != nil {
		return nil, false, err
	}

	checklists, err := s.store.ListChecklists(ctx)
	if err != nil {
		return nil, false, err
	}
	var checklist model.Checklist
	for _, c := range checklists {
		if c.Code == item.ChecklistCode {
			checklist = c
			break
		}
	}

	items, err := s.store.ListItems(ctx, item.ChecklistCode)
	if err != nil {
		return nil, false, err
	}
	itemIDs := make([]int64, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}
	done, err := s.store.GetProgress(ctx, userID, itemIDs)
	if err != nil {
		return nil, false, err
	}

	return &ChecklistView{
		Checklist: checklist,
		Items:     items,
		Done:      done,
	}, nowDone, nil
}
