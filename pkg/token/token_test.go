package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Opora/config"
	"Opora/pkg/errors"
)

func TestInit_RequiresSecrets(t *testing.T) {
	config.Cfg.JWTSecret = ""
	config.Cfg.GatewaySecret = ""
	assert.Error(t, Init())

	config.Cfg.JWTSecret = "test-jwt-secret"
	assert.Error(t, Init())

	config.Cfg.GatewaySecret = "test-gateway-secret"
	assert.NoError(t, Init())
}

func TestExchangeAndValidate(t *testing.T) {
	config.Cfg.JWTSecret = "test-jwt-secret"
	config.Cfg.GatewaySecret = "test-gateway-secret"
	config.Cfg.JWTExpireMinutes = 30
	require.NoError(t, Init())

	_, _, err := ExchangeGatewaySecret("wrong-secret", "chat-gateway")
	assert.ErrorIs(t, err, errors.ErrInvalidGatewaySecret)

	accessToken, expiresIn, err := ExchangeGatewaySecret("test-gateway-secret", "chat-gateway")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.Greater(t, expiresIn, 0)

	svc, err := ValidateServiceToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "chat-gateway", svc)
}

func TestValidateServiceToken_Garbage(t *testing.T) {
	config.Cfg.JWTSecret = "test-jwt-secret"
	config.Cfg.GatewaySecret = "test-gateway-secret"
	require.NoError(t, Init())

	_, err := ValidateServiceToken("not-a-jwt")
	assert.Error(t, err)
}
