package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	SessionSize       int
	MinSessionSize    int
	NewPoolMultiplier int
	DuePoolMultiplier int
	IntervalStrategy  string
	ImportWorkerCount int
	ImportQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:vocabflash.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		SessionSize:       envIntOr("SESSION_SIZE", 10),
		MinSessionSize:    envIntOr("MIN_SESSION_SIZE", 5),
		NewPoolMultiplier: envIntOr("NEW_POOL_MULTIPLIER", 5),
		DuePoolMultiplier: envIntOr("DUE_POOL_MULTIPLIER", 2),
		IntervalStrategy:  envOr("INTERVAL_STRATEGY", "sm2"),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),
	}
}

// Validate checks the configuration and returns one error describing every
// invalid value found.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.SessionSize < 1 {
		problems = append(problems, "SESSION_SIZE must be at least 1")
	}
	if c.MinSessionSize < 0 || c.MinSessionSize > c.SessionSize {
		problems = append(problems, "MIN_SESSION_SIZE must be between 0 and SESSION_SIZE")
	}
	if c.NewPoolMultiplier < 1 {
		problems = append(problems, "NEW_POOL_MULTIPLIER must be at least 1")
	}
	if c.DuePoolMultiplier < 1 {
		problems = append(problems, "DUE_POOL_MULTIPLIER must be at least 1")
	}
	switch c.IntervalStrategy {
	case "sm2", "streak":
	default:
		problems = append(problems, fmt.Sprintf("INTERVAL_STRATEGY %q is not one of sm2, streak", c.IntervalStrategy))
	}
	if c.ImportWorkerCount < 1 {
		problems = append(problems, "IMPORT_WORKER_COUNT must be at least 1")
	}
	if c.ImportQueueSize < 1 {
		problems = append(problems, "IMPORT_QUEUE_SIZE must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
