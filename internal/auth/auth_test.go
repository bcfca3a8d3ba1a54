package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-backoffice/internal/config"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		Username:  "admin",
		Password:  "testpassword123",
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	service, err := NewService(testConfig())
	require.NoError(t, err)
	return service
}

func TestNewService(t *testing.T) {
	service := newTestService(t)
	assert.NotEmpty(t, service.jwtSecret)
	assert.Equal(t, time.Hour, service.tokenExp)
	assert.NotEqual(t, "testpassword123", service.passwordHash)

	cfg := testConfig()
	cfg.JWTExpiry = 0
	service, err := NewService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, service.tokenExp)

	cfg = testConfig()
	cfg.Password = ""
	_, err = NewService(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.JWTSecret = ""
	_, err = NewService(cfg)
	assert.Error(t, err)
}

func TestService_CheckPassword(t *testing.T) {
	service := newTestService(t)

	password := "testpassword123"
	hash, err := service.HashPassword(password)
	require.NoError(t, err)

	// Test correct password
	assert.True(t, service.CheckPassword(password, hash))

	// Test incorrect password
	assert.False(t, service.CheckPassword("wrongpassword", hash))
}

func TestService_Login(t *testing.T) {
	service := newTestService(t)

	resp, err := service.Login("admin", "testpassword123")
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Username)
	assert.NotEmpty(t, resp.Token)
	assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

	claims, err := service.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	_, err = service.Login("admin", "wrongpassword")
	assert.Equal(t, ErrInvalidCredentials, err)

	_, err = service.Login("root", "testpassword123")
	assert.Equal(t, ErrInvalidCredentials, err)
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t)

	token, _, err := service.GenerateToken("admin")
	require.NoError(t, err)

	// Test valid token
	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	// Test invalid token
	_, err = service.ValidateToken("invalid-token")
	assert.Equal(t, ErrInvalidToken, err)

	// Test token with Bearer prefix
	_, err = service.ValidateToken("Bearer " + token)
	assert.NoError(t, err)

	// Test token signed with another secret
	other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = service.ValidateToken(other)
	assert.Equal(t, ErrInvalidToken, err)

	// Test token for another operator name
	stranger, _, err := service.GenerateToken("mallory")
	require.NoError(t, err)
	_, err = service.ValidateToken(stranger)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_TokenExpiration(t *testing.T) {
	service := newTestService(t)

	token, exp, err := service.GenerateToken("admin")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, exp, claims.Exp)

	now := time.Now().Unix()
	assert.Greater(t, claims.Exp, now)
	assert.LessOrEqual(t, claims.Exp, now+int64(service.tokenExp.Seconds())+1)

	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := service.GenerateToken("admin")
	require.NoError(t, err)
	_, err = service.ValidateToken(expired)
	assert.Equal(t, ErrExpiredToken, err)
}

func TestService_ExtractTokenFromHeader(t *testing.T) {
	service := newTestService(t)

	// Test valid header
	extracted, err := service.ExtractTokenFromHeader("Bearer valid-token")
	assert.NoError(t, err)
	assert.Equal(t, "valid-token", extracted)

	// Test empty header
	_, err = service.ExtractTokenFromHeader("")
	assert.Equal(t, ErrInvalidToken, err)

	// Test invalid format
	_, err = service.ExtractTokenFromHeader("InvalidFormat")
	assert.Equal(t, ErrInvalidToken, err)

	// Test missing token
	_, err = service.ExtractTokenFromHeader("Bearer ")
	assert.Equal(t, ErrInvalidToken, err)
}
