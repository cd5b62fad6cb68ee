package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"Opora/internal/model/dto"
	"Opora/internal/service"
	errs "Opora/pkg/errors"
	"Opora/pkg/response"
)

// PracticeHandler 内容库浏览与练习完成
type PracticeHandler struct {
	library      *service.LibraryService
	gamification *service.GamificationService
}

func NewPracticeHandler(library *service.LibraryService, gamification *service.GamificationService) *PracticeHandler {
	return &PracticeHandler{library: library, gamification: gamification}
}

// Categories 分类列表
// GET /v1/library/categories
func (h *PracticeHandler) Categories(ctx context.Context, c *app.RequestContext) {
	categories, err := h.library.Categories(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		result = append(result, dto.CategoryResponse{
			Code:  category.Code,
			Title: category.Title,
		})
	}
	response.Success(ctx, c, result)
}

// PracticesByCategory 某分类下的启用练习
// GET /v1/library/categories/:code/practices
func (h *PracticeHandler) PracticesByCategory(ctx context.Context, c *app.RequestContext) {
	code := c.Param("code")

	practices, err := h.library.PracticesByCategory(ctx, code)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result := make([]*dto.RenderablePractice, 0, len(practices))
	for i := range practices {
		result = append(result, renderPractice(&practices[i]))
	}
	response.Success(ctx, c, result)
}

// GetPractice 单条练习
// GET /v1/practices/:id
func (h *PracticeHandler) GetPractice(ctx context.Context, c *app.RequestContext) {
	id, err := pathPracticeID(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	practice, err := h.library.Get(ctx, id)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, renderPractice(practice))
}

// RandomPractice 练习之日随机抽取
// GET /v1/practices/random
func (h *PracticeHandler) RandomPractice(ctx context.Context, c *app.RequestContext) {
	practice, err := h.library.RandomOfTheDay(ctx)
	if err == errs.NoContentAvailable {
		response.Success(ctx, c, map[string]interface{}{
			"message": noContentMessage,
		})
		return
	}
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, renderPractice(practice))
}

// Complete 练习完成结算
// POST /v1/practices/:id/complete
func (h *PracticeHandler) Complete(ctx context.Context, c *app.RequestContext) {
	id, err := pathPracticeID(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CompleteRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := h.gamification.RecordCompletion(ctx, req.UserID, id)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	message := "✅ Класс, практика засчитана!\n"
	for _, badge := range result.NewBadges {
		message += fmt.Sprintf("🏆 Достижение: %s!\n", badge.Title)
	}
	message += fmt.Sprintf("У тебя уже %d баллов ресурса 🌱", result.TotalPoints)

	response.Success(ctx, c, dto.CompleteResponse{
		PointsAwarded: result.PointsAwarded,
		TotalPoints:   result.TotalPoints,
		StreakDays:    result.StreakDays,
		NewBadges:     badgeTitles(result.NewBadges),
		Message:       message,
	})
}

// pathPracticeID 解析路径中的练习 id
func pathPracticeID(c *app.RequestContext) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.PracticeNotFound
	}
	return id, nil
}
