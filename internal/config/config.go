package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port     string
	MongoURI string
	RedisURL string

	// JWT configuration (validation only; token issuance lives in the
	// auth service)
	JWTSecret string

	// Trending scheduler cadence. Deployments have run anywhere from 5
	// to 30 minutes, so the interval is an explicit setting rather than
	// a constant.
	TrendingInterval time.Duration

	// Feed limits
	FeedDefaultLimit     int
	FeedMaxLimit         int
	TrendingDefaultLimit int
	TrendingMaxLimit     int
	FeedCandidateCap     int

	// Community stats cache TTL (Redis)
	StatsCacheTTL time.Duration

	Environment string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:      getEnv("PORT", "3001"),
		MongoURI:  getEnv("MONGODB_URI", ""),
		RedisURL:  getEnv("REDIS_URL", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),

		TrendingInterval: time.Duration(getIntEnv("TRENDING_INTERVAL_MINUTES", 30)) * time.Minute,

		FeedDefaultLimit:     30,
		FeedMaxLimit:         100,
		TrendingDefaultLimit: 50,
		TrendingMaxLimit:     200,
		FeedCandidateCap:     1000,

		StatsCacheTTL: time.Duration(getIntEnv("STATS_CACHE_TTL_SECONDS", 60)) * time.Second,

		Environment: getEnv("ENVIRONMENT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
