// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing or malformed, Load errors.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all runtime configuration for the API.
type Config struct {
	Port    string
	GinMode string

	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	DBDriver    string
	DatabaseURL string
	RedisURL    string // optional; empty disables event publishing

	SimulationSchedule string // cron spec; empty disables the periodic scrape
	SimulationDuration time.Duration
	SessionIdleTimeout time.Duration

	CORSAllowedOrigins []string // empty means any origin
	LogLevel           slog.Level
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	aiTimeout, err := duration("AI_TIMEOUT", 45*time.Second)
	if err != nil {
		return nil, err
	}
	simDuration, err := duration("SIMULATION_DURATION", 2*time.Second)
	if err != nil {
		return nil, err
	}
	idle, err := duration("SESSION_IDLE_TIMEOUT", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(getenv("DB_DRIVER", DriverSQLite))
	dbURL := os.Getenv("DATABASE_URL")
	switch driver {
	case DriverSQLite:
		if dbURL == "" {
			dbURL = "jobmatch.db"
		}
	case DriverPostgres:
		if dbURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, driver)
	}

	schedule, ok := os.LookupEnv("SIMULATION_SCHEDULE")
	if !ok {
		schedule = "@every 6h"
	}
	schedule = strings.TrimSpace(schedule)
	if schedule != "" {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return nil, fmt.Errorf("SIMULATION_SCHEDULE %q: %w", schedule, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getenv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return &Config{
		Port:               getenv("PORT", "8080"),
		GinMode:            os.Getenv("GIN_MODE"),
		GeminiAPIKey:       apiKey,
		GeminiModel:        getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		AITimeout:          aiTimeout,
		DBDriver:           driver,
		DatabaseURL:        dbURL,
		RedisURL:           os.Getenv("REDIS_URL"),
		SimulationSchedule: schedule,
		SimulationDuration: simDuration,
		SessionIdleTimeout: idle,
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		LogLevel:           level,
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration like 45s, got %q", key, s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
