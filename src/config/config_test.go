package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_URI", "")
	t.Setenv("RECAPTCHA_SECRET_KEY", "")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "SchoolResultsDB", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Minute, cfg.OTP.TTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, devJWTSecret, cfg.JWT.Secret)
	assert.Equal(t, 5, cfg.Login.MaxAttempts)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Captcha.Enabled())
	assert.False(t, cfg.Upload.UseS3())
}

func TestFromViperOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("OTP_TTL", "2m")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("TWILIO_SID", "AC123")
	t.Setenv("TWILIO_AUTH_TOKEN", "token")
	t.Setenv("TWILIO_PHONE", "+15550001111")
	t.Setenv("UPLOAD_S3_BUCKET", "result-sheets")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Minute, cfg.OTP.TTL)
	assert.True(t, cfg.Redis.Enabled())
	assert.True(t, cfg.SMS.Enabled())
	assert.True(t, cfg.Upload.UseS3())
}

func TestFromViperMissingValues(t *testing.T) {
	t.Run("MongoURI", func(t *testing.T) {
		t.Setenv("MONGO_URI", "")
		_, err := FromViper(newViper())
		assert.Error(t, err)
	})

	t.Run("JWTSecretOutsideDevelopment", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("MONGO_URI", "mongodb://db:27017")
		t.Setenv("JWT_SECRET", "")
		_, err := FromViper(newViper())
		assert.Error(t, err)
	})
}
