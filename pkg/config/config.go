package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	// StoreBackend selects where shop state lives: "file", "redis" or
	// "memory".
	StoreBackend string
	DataDir      string
	PollInterval time.Duration

	RedisAddr   string
	RedisPrefix string

	CatalogPerPage int
	OrdersPerPage  int
	PurgeAfterDays int
}

func Load() Config {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend: getEnv("STORE_BACKEND", "file"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		PollInterval: getEnvDuration("POLL_INTERVAL", 500*time.Millisecond),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix: getEnv("REDIS_PREFIX", "animanga"),

		CatalogPerPage: getEnvInt("CATALOG_PER_PAGE", 8),
		OrdersPerPage:  getEnvInt("ORDERS_PER_PAGE", 10),
		PurgeAfterDays: getEnvInt("PURGE_AFTER_DAYS", 30),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
