package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Opora/internal/model/dto"
	"Opora/internal/service"
	"Opora/pkg/response"
)

const (
	minigameCorrectMessage = "Верно. Пауза и уточнение помогают снизить напряжение. +2 очка"
	minigameWrongMessage   = "Есть варианты лучше. Попробуйте в следующий раз сделать паузу и уточнить."
)

// MinigameHandler 情景小游戏
type MinigameHandler struct {
	gamification *service.GamificationService
}

func NewMinigameHandler(gamification *service.GamificationService) *MinigameHandler {
	return &MinigameHandler{gamification: gamification}
}

// Answer 作答
// POST /v1/minigame/answer
func (h *MinigameHandler) Answer(ctx context.Context, c *app.RequestContext) {
	var req dto.MinigameRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	correct, points, err := h.gamification.AnswerSituation(ctx, req.UserID, req.Choice)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	message := minigameWrongMessage
	if correct {
		message = minigameCorrectMessage
	}

	response.Success(ctx, c, dto.MinigameResponse{
		Correct:       correct,
		PointsAwarded: points,
		Message:       message,
	})
}
