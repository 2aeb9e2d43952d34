package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string
	Store       StoreConfig
	Scraper     ScraperConfig
}

// StoreConfig carries the two connection strings the generator knows about:
// the primary store every run writes to, and the throwaway store the test
// suite is pointed at.
type StoreConfig struct {
	SourceURL       string
	TestURL         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type ScraperConfig struct {
	BaseURL   string
	Pages     int
	UserAgent string
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	cfg.Store = StoreConfig{
		SourceURL:       os.Getenv("SOURCE_DATABASE_URL"),
		TestURL:         os.Getenv("TEST_DATABASE_URL"),
		MaxOpenConns:    getEnvAsInt("STORE_MAX_OPEN_CONNS", 5),
		MaxIdleConns:    getEnvAsInt("STORE_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: getEnvAsDuration("STORE_CONN_MAX_LIFETIME", 5*time.Minute),
	}

	if cfg.Store.SourceURL == "" {
		return nil, fmt.Errorf("SOURCE_DATABASE_URL is not set")
	}

	cfg.Scraper = ScraperConfig{
		BaseURL:   getEnv("SCRAPE_BASE_URL", "https://m.petmallshop.com/search?page=%d&keyword=%s"),
		Pages:     getEnvAsInt("SCRAPE_PAGES", 2),
		UserAgent: getEnv("SCRAPE_USER_AGENT", defaultUserAgent),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
