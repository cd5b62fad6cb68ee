package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
)

func TestUserStart_CreatesAndRefreshes(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	greeting, isNew, err := svc.Start(context.Background(), 42, "Аня", "anya")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, GreetingText, greeting)

	user, _ := store.GetByID(context.Background(), 42)
	require.NotNil(t, user)
	assert.True(t, user.DailyEnabled)

	// 重复 /start 刷新资料，不算新用户
	_, isNew, err = svc.Start(context.Background(), 42, "Анна", "anya")
	require.NoError(t, err)
	assert.False(t, isNew)

	user, _ = store.GetByID(context.Background(), 42)
	assert.Equal(t, "Анна", user.FirstName)
}

func TestUserStart_InvalidID(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	_, _, err := svc.Start(context.Background(), 0, "", "")
	assert.ErrorIs(t, err, errs.InvalidUserID)

	_, _, err = svc.Start(context.Background(), -5, "", "")
	assert.ErrorIs(t, err, errs.InvalidUserID)
}

func TestUpdateDailySettings(t *testing.T) {
	store := newFakeUserStore(&model.User{TelegramID: 1, DailyEnabled: true})
	svc := NewUserService(store)

	tz := "Asia/Novosibirsk"
	require.NoError(t, svc.UpdateDailySettings(context.Background(), 1, false, &tz))

	user, _ := store.GetByID(context.Background(), 1)
	assert.False(t, user.DailyEnabled)
	require.NotNil(t, user.Timezone)
	assert.Equal(t, tz, *user.Timezone)
}

func TestUpdateDailySettings_InvalidTimezone(t *testing.T) {
	store := newFakeUserStore(&model.User{TelegramID: 1})
	svc := NewUserService(store)

	bad := "Mars/Olympus"
	err := svc.UpdateDailySettings(context.Background(), 1, true, &bad)
	assert.ErrorIs(t, err, errs.InvalidTimezone)
}

func TestUpdateDailySettings_UnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	err := svc.UpdateDailySettings(context.Background(), 999, true, nil)
	assert.ErrorIs(t, err, errs.UserNotFound)
}
