package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	pgconfig "Squadup/config/postgres"
)

// AppConfig is everything the process reads from its environment.
type AppConfig struct {
	Port    string
	Prod    bool
	Migrate bool

	JWTSecret   string
	CORSOrigins []string

	Postgres pgconfig.Config
	RedisURL string

	// MatchSearchLimit is the number of searches a user may run per
	// MatchSearchWindow. Zero disables the limiter.
	MatchSearchLimit  int
	MatchSearchWindow time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads the configuration from environment variables. Unset variables
// take their defaults; malformed numbers or durations are an error.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:              getEnv("PORT", "8080"),
		Prod:              os.Getenv("PROD") == "true",
		Migrate:           os.Getenv("MIGRATE_POSTGRES") == "true",
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		Postgres:          pgconfig.FromEnv(),
		RedisURL:          getEnv("REDIS_URL", "localhost:6379"),
		MatchSearchLimit:  30,
		MatchSearchWindow: time.Minute,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
	}

	if v := os.Getenv("MATCH_SEARCH_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid MATCH_SEARCH_LIMIT %q", v)
		}
		cfg.MatchSearchLimit = n
	}
	if v := os.Getenv("MATCH_SEARCH_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid MATCH_SEARCH_WINDOW %q", v)
		}
		cfg.MatchSearchWindow = d
	}

	if cfg.Prod && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when PROD=true")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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
