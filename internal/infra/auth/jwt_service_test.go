package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"htga/config"
	"htga/internal/domain/service"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	accessToken, _, err := svc.GenerateTokens("JEVA01", []string{service.RoleEvaluator})
	require.NoError(t, err)

	subject, roles, err := svc.ValidateAccessToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, "JEVA01", subject)
	assert.Equal(t, []string{service.RoleEvaluator}, roles)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	_, refreshToken, err := svc.GenerateTokens("JEVA01", []string{service.RoleEvaluator})
	require.NoError(t, err)

	subject, err := svc.ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "JEVA01", subject)
}

func TestJWTService_TokensAreNotInterchangeable(t *testing.T) {
	svc := newTestTokenService(t)

	accessToken, refreshToken, err := svc.GenerateTokens("JEVA01", []string{service.RoleEvaluator})
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(accessToken)
	assert.Error(t, err)

	_, _, err = svc.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}
