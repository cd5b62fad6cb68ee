package errors

import "errors"

// token 相关的内部哨兵错误，不直接暴露给网关。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator is not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidGatewaySecret         = errors.New("invalid gateway secret")
)
