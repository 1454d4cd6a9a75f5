package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	t.Setenv("ADMIN_EMAIL", "  Admin@Praia.dev ")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("AI_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, "admin@praia.dev", cfg.AdminEmail)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "test_secret")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestRedisFullAddr(t *testing.T) {
	cfg := &Config{RedisAddr: "localhost", RedisPort: "6380"}
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "localhost:6380", cfg.RedisFullAddr())
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("PRAIA_TEST_INT", "nope")
	t.Setenv("PRAIA_TEST_BOOL", "nope")
	t.Setenv("PRAIA_TEST_DURATION", "nope")

	assert.Equal(t, 7, getEnvAsInt("PRAIA_TEST_INT", 7))
	assert.True(t, getEnvAsBool("PRAIA_TEST_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsDuration("PRAIA_TEST_DURATION", time.Minute))
}
