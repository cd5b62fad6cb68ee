package middleware

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"Opora/config"
	"Opora/pkg/errors"
	"Opora/pkg/logger"
	"Opora/pkg/response"
)

// RecoverConfig recover 中间件配置
type RecoverConfig struct {
	// 是否启用堆栈追踪
	EnableStackTrace bool
	// 生产环境是否返回详细错误
	ExposeDetailsInProduction bool
	// 是否是生产环境
	IsProduction bool
}

func NewRecoverConfig() RecoverConfig {
	return RecoverConfig{
		EnableStackTrace:          true,
		ExposeDetailsInProduction: false,
		IsProduction:              config.Cfg.IsProduction(),
	}
}

// RecoverMiddleware 创建 recover 中间件
func RecoverMiddleware() app.HandlerFunc {
	return RecoverMiddlewareWithConfig(NewRecoverConfig())
}

func RecoverMiddlewareWithConfig(cfg RecoverConfig) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				handlePanic(ctx, c, err, cfg)
			}
		}()

		c.Next(ctx)
	}
}

func handlePanic(ctx context.Context, c *app.RequestContext, err interface{}, cfg RecoverConfig) {
	var stack []byte
	if cfg.EnableStackTrace {
		stack = getStackTrace()
	}

	logger.Logger.Error("Panic recovered",
		zap.Any("panic", err),
		zap.String("method", string(c.Method())),
		zap.String("path", string(c.Path())),
		zap.String("client_ip", c.ClientIP()),
		zap.ByteString("stack", stack),
	)

	var errDef errors.Definition
	if cfg.IsProduction && !cfg.ExposeDetailsInProduction {
		errDef = errors.Definition{
			Code:    "INTERNAL_SERVER_ERROR",
			Message: "Internal server error, please retry later",
		}
	} else {
		errDef = errors.Definition{
			Code:    "INTERNAL_SERVER_ERROR",
			Message: fmt.Sprintf("Internal error: %v", err),
		}
	}

	var details map[string]interface{}
	if !cfg.IsProduction || cfg.ExposeDetailsInProduction {
		details = map[string]interface{}{
			"panic":     fmt.Sprintf("%v", err),
			"timestamp": time.Now().Format(time.RFC3339),
		}
		if cfg.EnableStackTrace {
			details["stack"] = string(stack)
		}
	}

	if details != nil {
		response.ErrorWithDetails(ctx, c, errDef, details)
	} else {
		response.Error(ctx, c, errDef)
	}
}

// getStackTrace 当前 goroutine 的简化调用栈
func getStackTrace() []byte {
	var buf bytes.Buffer

	buf.WriteString("goroutine panic:\n")
	skip := 3 // 跳过 runtime 和 recover 相关的函数
	for i := skip; ; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		buf.WriteString(fmt.Sprintf("  %s:%d\n    %s\n", file, line, fn.Name()))
	}

	return buf.Bytes()
}
