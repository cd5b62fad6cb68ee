package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"Opora/internal/model/dto"
	"Opora/internal/service"
	errs "Opora/pkg/errors"
	"Opora/pkg/response"
	"Opora/utils"
)

// ChecklistHandler 清单与勾选
type ChecklistHandler struct {
	checklists *service.ChecklistService
}

func NewChecklistHandler(checklists *service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklists: checklists}
}

// List 全部清单及勾选状态
// GET /v1/checklists?user_id=
func (h *ChecklistHandler) List(ctx context.Context, c *app.RequestContext) {
	userID, err := queryUserID(c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	views, err := h.checklists.List(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	result := make([]dto.ChecklistResponse, 0, len(views))
	for _, view := range views {
		result = append(result, checklistResponse(view))
	}
	response.Success(ctx, c, result)
}

// Toggle 翻转条目勾选
// POST /v1/checklists/items/:id/toggle
func (h *ChecklistHandler) Toggle(ctx context.Context, c *app.RequestContext) {
	raw := c.Param("id")
	itemID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || itemID <= 0 {
		response.Error(ctx, c, errs.ChecklistItemNotFound)
		return
	}

	var req dto.ToggleRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	view, _, err := h.checklists.Toggle(ctx, req.UserID, itemID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, checklistResponse(*view))
}

func checklistResponse(view service.ChecklistView) dto.ChecklistResponse {
	items := make([]dto.ChecklistItemView, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, dto.ChecklistItemView{
			ID:    item.ID,
			Title: item.Title,
			Done:  view.Done[item.ID],
		})
	}

	return dto.ChecklistResponse{
		Code:  view.Checklist.Code,
		Title: view.Checklist.Title,
		Items: items,
		Text:  utils.FormatChecklist(view.Checklist.Title, view.Items, view.Done),
	}
}

// queryUserID 解析查询串中的 user_id
func queryUserID(c *app.RequestContext) (int64, error) {
	raw := c.Query("user_id")
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errs.InvalidUserID
	}
	return userID, nil
}
