package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
)

func newChecklistFixture() (*ChecklistService, *fakeChecklistStore) {
	store := newFakeChecklistStore()
	store.checklists = []model.Checklist{{Code: "grounding", Title: "Заземление"}}
	store.items = []model.ChecklistItem{
		{ID: 1, ChecklistCode: "grounding", Title: "Почувствовать стопы", OrderIndex: 1},
		{ID: 2, ChecklistCode: "grounding", Title: "Расслабить плечи", OrderIndex: 2},
	}

	users := newFakeUserStore(&model.User{TelegramID: 1})
	return NewChecklistService(store, users), store
}

func TestChecklist_ListWithProgress(t *testing.T) {
	svc, store := newChecklistFixture()
	store.progress[1] = map[int64]bool{2: true}

	views, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "grounding", view.Checklist.Code)
	assert.Len(t, view.Items, 2)
	assert.False(t, view.Done[1])
	assert.True(t, view.Done[2])
}

func TestChecklist_ToggleIsSelfInverse(t *testing.T) {
	svc, _ := newChecklistFixture()

	view, done, err := svc.Toggle(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, view.Done[1])

	view, done, err = svc.Toggle(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.False(t, done)
	assert.False(t, view.Done[1])
}

func TestChecklist_ToggleIsPerUser(t *testing.T) {
	store := newFakeChecklistStore()
	store.checklists = []model.Checklist{{Code: "grounding", Title: "Заземление"}}
	store.items = []model.ChecklistItem{{ID: 1, ChecklistCode: "grounding", Title: "Почувствовать стопы"}}
	users := newFakeUserStore(&model.User{TelegramID: 1}, &model.User{TelegramID: 2})
	svc := NewChecklistService(store, users)

	_, _, err := svc.Toggle(context.Background(), 1, 1)
	require.NoError(t, err)

	views, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, views[0].Done[1])
}

func TestChecklist_ToggleUnknownItem(t *testing.T) {
	svc, _ := newChecklistFixture()

	_, _, err := svc.Toggle(context.Background(), 1, 999)
	assert.ErrorIs(t, err, errs.ChecklistItemNotFound)
}

func TestChecklist_ToggleUnknownUser(t *testing.T) {
	svc, _ := newChecklistFixture()

	_, _, err := svc.Toggle(context.Background(), 999, 1)
	assert.ErrorIs(t, err, errs.UserNotFound)
}
