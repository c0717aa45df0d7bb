package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "PORT", "DB_DRIVER", "TOKEN_TTL", "CORS_ORIGINS", "UPLOAD_BACKEND"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "local", cfg.UploadBackend)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CACHE_TTL", "120")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg := Load()

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.DBAutoMigrate)
}

func TestGetEnvDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_TTL", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("SOME_TTL", time.Minute))
}
