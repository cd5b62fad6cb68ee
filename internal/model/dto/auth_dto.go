package dto

// ========== Auth 相关 DTO ==========

// TokenExchangeRequest 网关密钥换取服务令牌请求
type TokenExchangeRequest struct {
	GatewaySecret string `json:"gateway_secret" binding:"required"`
	Service       string `json:"service" binding:"required"` // 调用方标识，如 telegram-gateway
}

// TokenExchangeResponse 服务令牌响应
type TokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}
