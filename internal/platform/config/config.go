package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr                    string
	DatabaseURL             string
	JWTSecret               string
	TokenTTL                time.Duration
	Environment             string
	SeedAdminUsername       string
	SeedAdminPassword       string
	SeedDemoData            bool
	RunMigrations           bool
	RunSeed                 bool
	MigrationsDir           string
	SentimentURL            string
	SentimentTimeout        time.Duration
	SentimentExcellentLabel string
	StatsTopN               int
	MetricsEnabled          bool
}

func Load() Config {
	return Config{
		Addr:                    getEnv("APP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		TokenTTL:                getEnvDuration("TOKEN_TTL", 12*time.Hour),
		Environment:             getEnv("APP_ENV", "development"),
		SeedAdminUsername:       getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword:       getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedDemoData:            getEnvBool("SEED_DEMO_DATA", false),
		RunMigrations:           getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                 getEnvBool("RUN_SEED", true),
		MigrationsDir:           getEnv("MIGRATIONS_DIR", "migrations"),
		SentimentURL:            getEnv("SENTIMENT_URL", ""),
		SentimentTimeout:        getEnvDuration("SENTIMENT_TIMEOUT", 3*time.Second),
		SentimentExcellentLabel: getEnv("SENTIMENT_EXCELLENT_LABEL", "Tốt"),
		StatsTopN:               getEnvInt("STATS_TOP_N", 5),
		MetricsEnabled:          getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.SentimentTimeout <= 0 {
		return fmt.Errorf("SENTIMENT_TIMEOUT must be positive")
	}
	if c.StatsTopN <= 0 {
		return fmt.Errorf("STATS_TOP_N must be positive")
	}
	return nil
}
