package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongo", cfg.Store.Driver)
	assert.Equal(t, 168, cfg.JWT.TTLHours)
	assert.Equal(t, 10, cfg.Reviews.PageSize)
	assert.Equal(t, "expiryeaze", cfg.Mongo.Database)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "development",
			Store:       StoreConfig{Driver: "memory"},
			JWT:         JWTConfig{SecretKey: defaultJWTSecret, TTLHours: 168},
			Reviews:     ReviewsConfig{PageSize: 10, MaxPageSize: 100},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.Store.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Environment = "production"
	assert.Error(t, cfg.Validate(), "default secret rejected in production")

	cfg = base()
	cfg.Environment = "production"
	cfg.JWT.SecretKey = "s3cret"
	assert.Error(t, cfg.Validate(), "memory store rejected in production")

	cfg = base()
	cfg.Reviews.PageSize = 0
	assert.Error(t, cfg.Validate())
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil))
}
