package middleware

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/jwt"

	"Opora/pkg/token"
)

const (
	IdentityKey = token.IdentityKey
)

var (
	authMiddleware *jwt.HertzJWTMiddleware
)

func initAuthMiddleware() error {
	// 使用 token 包中共享的生成器
	sharedGenerator := token.GetGenerator()
	if sharedGenerator == nil {
		return fmt.Errorf("token generator not initialized, call token.Init() first")
	}

	var err error
	authMiddleware, err = jwt.New(&jwt.HertzJWTMiddleware{
		Realm:       "Opora API",
		Key:         sharedGenerator.Key,
		Timeout:     sharedGenerator.Timeout,
		IdentityKey: sharedGenerator.IdentityKey,
		TimeFunc:    sharedGenerator.TimeFunc,

		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			svc, ok := claims[IdentityKey].(string)
			if !ok {
				return nil
			}
			return svc
		},

		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			c.JSON(code, map[string]interface{}{
				"error": map[string]interface{}{
					"code":    "UNAUTHORIZED",
					"message": message,
				},
			})
		},

		TokenLookup:   "header: Authorization",
		TokenHeadName: "Bearer",
	})

	return err
}

func AuthMiddleware() app.HandlerFunc {
	if authMiddleware == nil {
		panic("AuthMiddleware not initialized, call Init() first")
	}
	return authMiddleware.MiddlewareFunc()
}

// GetServiceName 从请求上下文中获取调用方服务标识
func GetServiceName(ctx context.Context, c *app.RequestContext) (string, bool) {
	svc, exists := c.Get(IdentityKey)
	if !exists {
		return "", false
	}

	name, ok := svc.(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}
