package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Opora/internal/model"
	"Opora/internal/model/dto"
	"Opora/internal/service"
	errs "Opora/pkg/errors"
	"Opora/pkg/response"
)

const (
	// NoContentAvailable 对用户永远不是致命错误
	noContentMessage = "Пока нет доступных практик."
	restMessage      = "Здорово! Побудь в этом состоянии 🌿 Если захочешь практику — загляни в библиотеку."
)

// StateHandler 状态选择入口
type StateHandler struct {
	matcher *service.MatcherService
	flow    *service.FlowService
}

func NewStateHandler(matcher *service.MatcherService, flow *service.FlowService) *StateHandler {
	return &StateHandler{matcher: matcher, flow: flow}
}

// SelectState 按状态返回练习、引导练习或休息提示
// POST /v1/states/select
func (h *StateHandler) SelectState(ctx context.Context, c *app.RequestContext) {
	var req dto.StateSelectRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	state := model.EmotionalState(req.State)
	if !state.Valid() {
		response.Error(ctx, c, errs.InvalidState)
		return
	}

	// strange 走引导练习而不是匹配
	if state == model.StateStrange {
		step := h.flow.Start(req.UserID)
		response.Success(ctx, c, dto.StateSelectResponse{
			Kind: "flow",
			Flow: &dto.FlowStepResponse{
				Stage: step.Stage,
				Text:  step.Text,
			},
		})
		return
	}

	practice, err := h.matcher.Match(ctx, state)
	if err == errs.NoContentAvailable {
		response.Success(ctx, c, dto.StateSelectResponse{
			Kind:    "empty",
			Message: noContentMessage,
		})
		return
	}
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	// calm/good 不需要练习
	if practice == nil {
		response.Success(ctx, c, dto.StateSelectResponse{
			Kind:    "rest",
			Message: restMessage,
		})
		return
	}

	response.Success(ctx, c, dto.StateSelectResponse{
		Kind:     "practice",
		Practice: renderPractice(practice),
	})
}
