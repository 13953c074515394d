package server

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempsuisse/platform/internal/config"
	"github.com/tempsuisse/platform/internal/server/middleware"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	token, err := svc.GenerateAdminToken()
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, middleware.RoleAdmin, claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestJWTRejectsEmptyToken(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	_, err := svc.ValidateToken("")
	assert.Error(t, err)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTService(&config.JWTConfig{Secret: "secret-a", ExpirationHours: 1})
	verifier := NewJWTService(&config.JWTConfig{Secret: "secret-b", ExpirationHours: 1})

	token, err := issuer.GenerateAdminToken()
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: middleware.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	})
	token, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTRejectsUnsignedToken(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Role: middleware.RoleAdmin})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
