package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Stores
	PostgresURL string
	RedisURL    string

	// League rules
	WeeklyAddLimit   int
	PlayoffStartWeek int
	PlayoffSeeds     int
	TopMoves         int

	// Signal cache TTLs
	TodayGamesTTL time.Duration
	ScheduleTTL   time.Duration
	StandingsTTL  time.Duration
	ExpertTTL     time.Duration

	// Decision worker
	WorkerCount   int
	QueueSize     int
	FlushInterval time.Duration

	// Learning
	MinTrainingSamples int
	TrainingWindowDays int
	SuppressionDays    int
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		WeeklyAddLimit:   getEnvInt("WEEKLY_ADD_LIMIT", 7),
		PlayoffStartWeek: getEnvInt("PLAYOFF_START_WEEK", 16),
		PlayoffSeeds:     getEnvInt("PLAYOFF_SEEDS", 6),
		TopMoves:         getEnvInt("TOP_MOVES", 5),

		TodayGamesTTL: getEnvDuration("TODAY_GAMES_TTL", 15*time.Minute),
		ScheduleTTL:   getEnvDuration("SCHEDULE_TTL", 30*time.Minute),
		StandingsTTL:  getEnvDuration("STANDINGS_TTL", 6*time.Hour),
		ExpertTTL:     getEnvDuration("EXPERT_TTL", 24*time.Hour),

		WorkerCount:   getEnvInt("WORKER_COUNT", 2),
		QueueSize:     getEnvInt("QUEUE_SIZE", 1000),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),

		MinTrainingSamples: getEnvInt("MIN_TRAINING_SAMPLES", 10),
		TrainingWindowDays: getEnvInt("TRAINING_WINDOW_DAYS", 60),
		SuppressionDays:    getEnvInt("SUPPRESSION_DAYS", 30),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
