package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Opora/internal/model/dto"
	"Opora/internal/service"
	errs "Opora/pkg/errors"
	"Opora/pkg/response"
)

// FlowHandler 引导练习会话操作
type FlowHandler struct {
	flow *service.FlowService
}

func NewFlowHandler(flow *service.FlowService) *FlowHandler {
	return &FlowHandler{flow: flow}
}

// Advance 推进一步；无会话时从头开始
// POST /v1/flow/advance
func (h *FlowHandler) Advance(ctx context.Context, c *app.RequestContext) {
	var req dto.FlowRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	step := h.flow.Advance(req.UserID)
	response.Success(ctx, c, dto.FlowStepResponse{
		Stage:    step.Stage,
		Text:     step.Text,
		Finished: step.Stage == service.FlowStageFinished,
	})
}

// Another 结束会话并随机给一条练习
// POST /v1/flow/another
func (h *FlowHandler) Another(ctx context.Context, c *app.RequestContext) {
	var req dto.FlowRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	practice, err := h.flow.Another(ctx, req.UserID)
	if err == errs.NoContentAvailable {
		response.Success(ctx, c, dto.FlowStepResponse{
			Stage: service.FlowStageEnded,
			Text:  noContentMessage,
		})
		return
	}
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	rendered := renderPractice(practice)
	rendered.Text = service.FlowAnotherPrefix + rendered.Text

	response.Success(ctx, c, dto.FlowStepResponse{
		Stage:    service.FlowStageEnded,
		Text:     rendered.Text,
		Practice: rendered,
	})
}

// End 结束会话
// POST /v1/flow/end
func (h *FlowHandler) End(ctx context.Context, c *app.RequestContext) {
	var req dto.FlowRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	step := h.flow.End(req.UserID)
	response.Success(ctx, c, dto.FlowStepResponse{
		Stage: step.Stage,
		Text:  step.Text,
	})
}
