package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"Opora/internal/model"
	errs "Opora/pkg/errors"
)

// GreetingText /start 的问候语
const GreetingText = "Привет! Это тренажёр практик осознанности и устойчивости. Выберите раздел ниже."

// UserService 用户资料与推送设置
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Start 首次交互，写入或刷新用户资料
func (s *UserService) Start(ctx context.Context, userID int64, firstName, username string) (greeting string, isNew bool, err error) {
	if userID <= 0 {
		return "", false, errs.InvalidUserID
	}

	user := &model.User{
		TelegramID:   userID,
		FirstName:    firstName,
		Username:     username,
		DailyEnabled: true,
	}
	isNew, err = s.users.Upsert(ctx, user)
	if err != nil {
		return "", false, err
	}
	return GreetingText, isNew, nil
}

// UpdateDailySettings 推送开关与时区覆盖；时区必须是合法 IANA 名称
func (s *UserService) UpdateDailySettings(ctx context.Context, userID int64, enabled bool, timezone *string) error {
	if timezone != nil {
		if _, err := time.LoadLocation(*timezone); err != nil {
			return errs.InvalidTimezone
		}
	}

	err := s.users.UpdateDailySettings(ctx, userID, enabled, timezone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.UserNotFound
	}
	return err
}
