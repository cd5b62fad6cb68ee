package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"Opora/pkg/errors"
	"Opora/pkg/logger"
	"Opora/pkg/response"
	"Opora/storage/redis"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 时间窗口（秒）
	Window int
	// 时间窗口内最大请求数
	MaxRequests int
	// 限流键前缀
	KeyPrefix string
	// 阻塞时长（秒），超过限制后禁止访问的时间
	BlockDuration int
}

// DefaultRateLimitConfig 默认限流配置，按调用方服务 + IP 限流
var DefaultRateLimitConfig = RateLimitConfig{
	Window:        60,
	MaxRequests:   600,
	KeyPrefix:     "rate:limit",
	BlockDuration: 300,
}

// AuthRateLimitConfig token 换取接口限流
var AuthRateLimitConfig = RateLimitConfig{
	Window:        60,
	MaxRequests:   10,
	KeyPrefix:     "auth:rate",
	BlockDuration: 900,
}

// RateLimiter 限流器，redis zset 滑动窗口
type RateLimiter struct {
	config RateLimitConfig
}

func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{config: config}
}

func (rl *RateLimiter) getKey(ctx context.Context, c *app.RequestContext) string {
	var identifier string

	if svc, ok := GetServiceName(ctx, c); ok {
		identifier = fmt.Sprintf("svc:%s", svc)
	}
	if identifier == "" {
		identifier = fmt.Sprintf("ip:%s", c.ClientIP())
	}

	return redis.Key(rl.config.KeyPrefix, identifier)
}

// Allow 滑动窗口判断是否放行，返回窗口内计数
func (rl *RateLimiter) Allow(ctx context.Context, c *app.RequestContext) (bool, int, error) {
	key := rl.getKey(ctx, c)
	now := time.Now()
	windowStart := now.Add(-time.Duration(rl.config.Window) * time.Second)

	client := redis.Client()
	pipe := client.Pipeline()

	// 移除窗口之外的请求记录后再计数
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	pipe.ZAdd(ctx, key, redislib.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	countCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, time.Duration(rl.config.Window)*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to run rate limit pipeline: %w", err)
	}

	count := int(countCmd.Val())
	return count <= rl.config.MaxRequests, count, nil
}

func (rl *RateLimiter) blockKey(ctx context.Context, c *app.RequestContext) string {
	return rl.getKey(ctx, c) + ":blocked"
}

// IsBlocked 检查是否处于阻塞期
func (rl *RateLimiter) IsBlocked(ctx context.Context, c *app.RequestContext) (bool, error) {
	result, err := redis.Client().Exists(ctx, rl.blockKey(ctx, c)).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

// Block 进入阻塞期
func (rl *RateLimiter) Block(ctx context.Context, c *app.RequestContext) error {
	return redis.Client().Set(ctx, rl.blockKey(ctx, c), "1",
		time.Duration(rl.config.BlockDuration)*time.Second).Err()
}

func RateLimitMiddleware(config RateLimitConfig) app.HandlerFunc {
	limiter := NewRateLimiter(config)

	return func(ctx context.Context, c *app.RequestContext) {
		blocked, err := limiter.IsBlocked(ctx, c)
		if err != nil {
			logger.Logger.Error("Failed to check block status", zap.Error(err))
			c.AbortWithStatus(consts.StatusInternalServerError)
			return
		}

		if blocked {
			c.Abort()
			response.Error(ctx, c, errors.TooManyRequests)
			return
		}

		allowed, count, err := limiter.Allow(ctx, c)
		if err != nil {
			logger.Logger.Error("Failed to check rate limit", zap.Error(err))
			c.AbortWithStatus(consts.StatusInternalServerError)
			return
		}

		remaining := config.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(config.MaxRequests))
		c.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Response.Header.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Duration(config.Window)*time.Second).Unix(), 10))

		if !allowed {
			if err := limiter.Block(ctx, c); err != nil {
				logger.Logger.Error("Failed to block caller", zap.Error(err))
			}

			c.Abort()
			response.Error(ctx, c, errors.TooManyRequests)
			return
		}

		c.Next(ctx)
	}
}

// GeneralRateLimitMiddleware 通用限流中间件
func GeneralRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(DefaultRateLimitConfig)
}

// AuthRateLimitMiddleware token 换取限流中间件
func AuthRateLimitMiddleware() app.HandlerFunc {
	return RateLimitMiddleware(AuthRateLimitConfig)
}
