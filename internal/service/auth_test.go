package service

import (
	"testing"
	"time"

	"gihanotis/internal/config"
	"gihanotis/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "changeme123"
	cfg.Admin.SessionSecret = "test-secret"
	cfg.Admin.SessionTTLHours = 8
	return cfg
}

func TestLoginIssuesParseableToken(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig(), zap.NewNop())
	require.NoError(t, err)

	token, expiresAt, err := svc.Login("admin", "changeme123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), expiresAt, time.Minute)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig(), zap.NewNop())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "admin", password: "wrong"},
		{name: "wrong username", username: "root", password: "changeme123"},
		{name: "both wrong", username: "root", password: "wrong"},
		{name: "empty", username: "", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig(), zap.NewNop())
	require.NoError(t, err)

	claims := &models.Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ParseToken(foreign)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	svc, err := NewAuthService(testAuthConfig(), zap.NewNop())
	require.NoError(t, err)

	claims := &models.Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ParseToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := hashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, verifyPassword(hash, "s3cret"))
	assert.False(t, verifyPassword(hash, "S3cret"))
	assert.False(t, verifyPassword("not-a-hash", "s3cret"))
	assert.False(t, verifyPassword("$argon2id$v=19$m=65536,t=1,p=4$bad$hash", "s3cret"))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	first, err := hashPassword("same")
	require.NoError(t, err)
	second, err := hashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, verifyPassword(first, "same"))
	assert.True(t, verifyPassword(second, "same"))
}
