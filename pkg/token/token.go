package token

import (
	"crypto/subtle"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/hertz-contrib/jwt"

	"Opora/config"
	"Opora/pkg/errors"
)

// 服务间鉴权：chat 网关用共享密钥换取短期 JWT，之后每次调用携带该 token。

const (
	IdentityKey = "svc"
)

var (
	// 这个实例会被 middleware 和 token 包共同使用
	sharedGenerator *jwt.HertzJWTMiddleware
)

func Init() error {
	if config.Cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if config.Cfg.GatewaySecret == "" {
		return fmt.Errorf("GATEWAY_SECRET is required")
	}

	var err error
	sharedGenerator, err = jwt.New(&jwt.HertzJWTMiddleware{
		Key:         []byte(config.Cfg.JWTSecret),
		Timeout:     time.Duration(config.Cfg.JWTExpireMinutes) * time.Minute,
		IdentityKey: IdentityKey,
		TimeFunc:    time.Now,
	})

	if err != nil {
		return fmt.Errorf("failed to initialize token generator: %w", err)
	}

	return nil
}

// GetGenerator 获取共享的 token 生成器（供 middleware 使用）
func GetGenerator() *jwt.HertzJWTMiddleware {
	return sharedGenerator
}

// ExchangeGatewaySecret 校验网关共享密钥并签发服务 token
func ExchangeGatewaySecret(secret, service string) (accessToken string, expiresIn int, err error) {
	if sharedGenerator == nil {
		return "", 0, errors.ErrTokenGeneratorNotInitialized
	}

	if subtle.ConstantTimeCompare([]byte(secret), []byte(config.Cfg.GatewaySecret)) != 1 {
		return "", 0, errors.ErrInvalidGatewaySecret
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(config.Cfg.JWTExpireMinutes) * time.Minute)

	claims := jwtv5.MapClaims{
		IdentityKey: service,
		"iat":       now.Unix(),
		"exp":       expiresAt.Unix(),
	}

	tokenObj := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	accessToken, err = tokenObj.SignedString([]byte(config.Cfg.JWTSecret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign service token: %w", err)
	}

	expiresIn = int(time.Until(expiresAt).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}

	return accessToken, expiresIn, nil
}

// ValidateServiceToken 解析并校验服务 token，返回服务名
func ValidateServiceToken(tokenString string) (service string, err error) {
	parsed, err := jwtv5.ParseWithClaims(tokenString, jwtv5.MapClaims{}, func(t *jwtv5.Token) (interface{}, error) {
		if t.Method != jwtv5.SigningMethodHS256 {
			return nil, fmt.Errorf("%w: %v, expected HS256", errors.ErrUnexpectedSigningMethod, t.Header["alg"])
		}
		return []byte(config.Cfg.JWTSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !parsed.Valid {
		return "", errors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwtv5.MapClaims)
	if !ok {
		return "", errors.ErrInvalidTokenClaims
	}

	svc, ok := claims[IdentityKey].(string)
	if !ok {
		return "", errors.ErrInvalidTokenClaims
	}

	return svc, nil
}
