package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"Opora/internal/model/dto"
	"Opora/internal/service"
	errs "Opora/pkg/errors"
	"Opora/pkg/response"
)

// UserHandler 用户资料、设置与统计
type UserHandler struct {
	users        *service.UserService
	gamification *service.GamificationService
}

func NewUserHandler(users *service.UserService, gamification *service.GamificationService) *UserHandler {
	return &UserHandler{users: users, gamification: gamification}
}

// Start 首次交互，写入用户并返回问候
// POST /v1/users/start
func (h *UserHandler) Start(ctx context.Context, c *app.RequestContext) {
	var req dto.StartRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	greeting, isNew, err := h.users.Start(ctx, req.UserID, req.FirstName, req.Username)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.StartResponse{
		Greeting:  greeting,
		IsNewUser: isNew,
	})
}

// UpdateDailySettings 每日推送设置
// PUT /v1/users/:user_id/daily
func (h *UserHandler) UpdateDailySettings(ctx context.Context, c *app.RequestContext) {
	userID, err := pathUserID(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.DailySettingsRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := h.users.UpdateDailySettings(ctx, userID, *req.Enabled, req.Timezone); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"enabled": *req.Enabled,
	})
}

// Stats 用户统计
// GET /v1/users/:user_id/stats
func (h *UserHandler) Stats(ctx context.Context, c *app.RequestContext) {
	userID, err := pathUserID(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	stats, err := h.gamification.Stats(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.StatsResponse{
		Points:       stats.Points,
		Completions:  stats.Completions,
		JournalCount: stats.JournalCount,
		StreakDays:   stats.StreakDays,
		Achievements: badgeTitles(stats.Achievements),
	})
}

// pathUserID 解析路径中的 user_id
func pathUserID(c *app.RequestContext) (int64, error) {
	raw := c.Param("user_id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errs.InvalidUserID
	}
	return userID, nil
}
