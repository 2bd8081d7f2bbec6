package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "gymdesk-api", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 7, cfg.Gym.ExpiryAlertDays)
	assert.Equal(t, "PT", cfg.Gym.PTCategory)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "APP_ENV=production\nDB_NAME=gym_test\nCORS_ALLOWED_ORIGINS=https://a.test, https://b.test\nJWT_EXPIRY_HOURS=2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := LoadFrom(path)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "gym_test", cfg.Database.Name)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiryHours)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("APP_PORT", "9090")

	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, "9090", cfg.App.Port)
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", User: "u", Password: "p", Name: "gym", Port: "5432", SSLMode: "disable", Timezone: "UTC"}

	assert.Equal(t, "host=db user=u password=p dbname=gym port=5432 sslmode=disable TimeZone=UTC", db.DSN())
}
