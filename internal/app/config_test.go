package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/stepwise-backend/internal/platform/gcp"
	"github.com/yungbote/stepwise-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "APP_ENV", "JWT_SECRET_KEY", "ACCESS_TOKEN_TTL", "DB_DRIVER",
		"CERTIFICATE_STORAGE_MODE", "CERTIFICATE_GCS_BUCKET", "STORAGE_EMULATOR_HOST",
		"ENROLLMENT_TTL_DAYS", "DEFAULT_PASSING_SCORE", "AUTH_RATE_LIMIT_PER_MINUTE",
		"CORS_ALLOWED_ORIGINS", "EXPOSE_INTERNAL_ERRORS", "OTEL_ENABLED",
	} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecretKey)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, gcp.ObjectStorageModeDisabled, cfg.ObjectStorage.Mode)
	assert.Equal(t, 365*24*time.Hour, cfg.EnrollmentTTL)
	assert.Equal(t, 70, cfg.DefaultPassingScore)
	assert.Equal(t, 20, cfg.AuthRateLimitPerMin)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.ExposeInternalErrors)
	assert.False(t, cfg.Otel.Enabled)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("ACCESS_TOKEN_TTL", "600")
	t.Setenv("ENROLLMENT_TTL_DAYS", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("CERTIFICATE_STORAGE_MODE", "")
	t.Setenv("CERTIFICATE_GCS_BUCKET", "certs")
	t.Setenv("STORAGE_EMULATOR_HOST", "http://localhost:4443/")
	t.Setenv("EXPOSE_INTERNAL_ERRORS", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=abc")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")

	cfg, err := LoadConfig(logger.Nop())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.ExposeInternalErrors)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 10*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.EnrollmentTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, gcp.ObjectStorageModeGCSEmulator, cfg.ObjectStorage.Mode)
	assert.Equal(t, "http://localhost:4443", cfg.ObjectStorage.EmulatorHost)
	assert.Equal(t, map[string]string{"x-api-key": "abc"}, cfg.Otel.Headers)
}

func TestLoadConfigRejectsBadStorageMode(t *testing.T) {
	t.Setenv("CERTIFICATE_STORAGE_MODE", "s3")
	_, err := LoadConfig(logger.Nop())
	var cfgErr *gcp.ObjectStorageConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "CERTIFICATE_STORAGE_MODE", cfgErr.Field)
}
