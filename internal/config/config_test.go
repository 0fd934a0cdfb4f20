package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "GIN_MODE", "GEMINI_API_KEY", "GEMINI_MODEL", "AI_TIMEOUT",
	"DB_DRIVER", "DATABASE_URL", "REDIS_URL", "SIMULATION_SCHEDULE",
	"SIMULATION_DURATION", "SESSION_IDLE_TIMEOUT", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
}

// clearEnv unsets every variable Load reads; t.Setenv restores them after
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, 45*time.Second, cfg.AITimeout)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "jobmatch.db", cfg.DatabaseURL)
	assert.Equal(t, "@every 6h", cfg.SimulationSchedule)
	assert.Equal(t, 2*time.Second, cfg.SimulationDuration)
	assert.Equal(t, 24*time.Hour, cfg.SessionIdleTimeout)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("PORT", "9090")
	t.Setenv("AI_TIMEOUT", "10s")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/jobs")
	t.Setenv("SIMULATION_SCHEDULE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://chamba.pe ,")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.AITimeout)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Empty(t, cfg.SimulationSchedule)
	assert.Equal(t, []string{"http://localhost:5173", "https://chamba.pe"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing api key", env: map[string]string{}},
		{name: "bad timeout", env: map[string]string{"GEMINI_API_KEY": "k", "AI_TIMEOUT": "soon"}},
		{name: "negative duration", env: map[string]string{"GEMINI_API_KEY": "k", "SIMULATION_DURATION": "-1s"}},
		{name: "unknown driver", env: map[string]string{"GEMINI_API_KEY": "k", "DB_DRIVER": "mysql"}},
		{name: "postgres without dsn", env: map[string]string{"GEMINI_API_KEY": "k", "DB_DRIVER": "postgres"}},
		{name: "bad schedule", env: map[string]string{"GEMINI_API_KEY": "k", "SIMULATION_SCHEDULE": "every day"}},
		{name: "bad log level", env: map[string]string{"GEMINI_API_KEY": "k", "LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
