package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Opora/internal/model/dto"
	errs "Opora/pkg/errors"
	"Opora/pkg/response"
	"Opora/pkg/token"
)

// AuthHandler 网关鉴权
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// ExchangeToken 网关共享密钥换取服务 token
// POST /v1/auth/token
func (h *AuthHandler) ExchangeToken(ctx context.Context, c *app.RequestContext) {
	var req dto.TokenExchangeRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	accessToken, expiresIn, err := token.ExchangeGatewaySecret(req.GatewaySecret, req.Service)
	if err != nil {
		response.Error(ctx, c, errs.Unauthorized)
		return
	}

	response.Success(ctx, c, dto.TokenExchangeResponse{
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	})
}
