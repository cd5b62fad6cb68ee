package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Opora/internal/model"
	"Opora/internal/model/dto"
	"Opora/internal/service"
	"Opora/pkg/response"
)

const journalSavedMessage = "Записано. Я подберу практику под состояние:"

// JournalHandler 日记
type JournalHandler struct {
	gamification *service.GamificationService
}

func NewJournalHandler(gamification *service.GamificationService) *JournalHandler {
	return &JournalHandler{gamification: gamification}
}

// Create 写入日记条目
// POST /v1/journal
func (h *JournalHandler) Create(ctx context.Context, c *app.RequestContext) {
	var req dto.JournalRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := h.gamification.RecordJournalEntry(ctx, req.UserID, model.EmotionalState(req.State), req.Note)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, dto.JournalResponse{
		Message:       journalSavedMessage,
		PointsAwarded: result.PointsAwarded,
		NewBadges:     badgeTitles(result.NewBadges),
		Suggestion:    renderPractice(result.Suggestion),
	})
}
