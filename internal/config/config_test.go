package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/tempsuisse_test")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")
}

func TestFromEnv_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.Cloudinary.Enabled())
}

func TestFromEnv_RequiresDatabaseURL(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnv_PortValidation(t *testing.T) {
	setBaseEnv(t)

	t.Setenv("PORT", "nope")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("PORT", "70000")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("PORT", "9090")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "")

	pc, err := NewPasswordConfig()
	require.NoError(t, err)

	hash, err := pc.HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, pc.VerifyPassword("s3cret", hash))
	assert.False(t, pc.VerifyPassword("wrong", hash))
}

func TestPasswordConfig_PepperChangesVerification(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "pepper")

	withPepper, err := NewPasswordConfig()
	require.NoError(t, err)
	hash, err := withPepper.HashPassword("s3cret")
	require.NoError(t, err)

	t.Setenv("PASSWORD_PEPPER", "")
	withoutPepper, err := NewPasswordConfig()
	require.NoError(t, err)

	assert.True(t, withPepper.VerifyPassword("s3cret", hash))
	assert.False(t, withoutPepper.VerifyPassword("s3cret", hash))
}

func TestPasswordConfig_CostRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "9")
	_, err := NewPasswordConfig()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "15")
	_, err = NewPasswordConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "")
	_, err := NewJWTConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "test-secret")
	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = NewJWTConfig()
	assert.Error(t, err)
}
