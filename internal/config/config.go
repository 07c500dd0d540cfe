package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend identifiers for the pluggable queue, store and cache layers.
const (
	QueueSQS    = "sqs"
	QueueMemory = "memory"

	StoreDynamoDB = "dynamodb"
	StoreSQLite   = "sqlite"

	CacheRedis  = "redis"
	CacheMemory = "memory"
)

// Config holds application configuration shared by all service binaries.
// Every client (queue, store, cache) is constructed once at process start
// from these values and passed into the components that need it.
type Config struct {
	LogLevel string
	DevMode  bool

	// AWS-backed infrastructure
	AWSRegion      string
	QueueURL       string
	AlertTable     string
	PortfolioTable string

	// Redis cache
	RedisAddr string
	RedisDB   int

	// Local-mode storage
	DataDir string

	// Backend selection
	QueueBackend string
	StoreBackend string
	CacheBackend string

	// Evaluator and publisher tuning
	AlertTTL      time.Duration
	PriceTTL      time.Duration
	FetchInterval time.Duration

	// Service ports
	StockDataPort int
	AlertsPort    int
	PortfolioPort int
	WebUIPort     int

	// Upstream base URLs used by the web proxy
	AlertsServiceURL    string
	PortfolioServiceURL string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DevMode:  getEnvBool("DEV_MODE", false),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		QueueURL:       getEnv("SQS_QUEUE_URL", ""),
		AlertTable:     getEnv("ALERT_TABLE_NAME", "AlertConditions"),
		PortfolioTable: getEnv("PORTFOLIO_TABLE_NAME", "Portfolios"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		DataDir: getEnv("DATA_DIR", "./data"),

		QueueBackend: getEnv("QUEUE_BACKEND", QueueSQS),
		StoreBackend: getEnv("STORE_BACKEND", StoreDynamoDB),
		CacheBackend: getEnv("CACHE_BACKEND", CacheRedis),

		AlertTTL:      getEnvDuration("ALERT_TTL", 5*time.Minute),
		PriceTTL:      getEnvDuration("PRICE_TTL", 5*time.Minute),
		FetchInterval: getEnvDuration("FETCH_INTERVAL", time.Minute),

		StockDataPort: getEnvInt("STOCKDATA_PORT", 5001),
		AlertsPort:    getEnvInt("ALERTS_PORT", 5002),
		PortfolioPort: getEnvInt("PORTFOLIO_PORT", 5003),
		WebUIPort:     getEnvInt("WEBUI_PORT", 8000),

		AlertsServiceURL:    getEnv("ALERTS_SERVICE_URL", "http://localhost:5002"),
		PortfolioServiceURL: getEnv("PORTFOLIO_SERVICE_URL", "http://localhost:5003"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.QueueBackend {
	case QueueSQS:
		if c.QueueURL == "" {
			return fmt.Errorf("SQS_QUEUE_URL is required when QUEUE_BACKEND=%s", QueueSQS)
		}
	case QueueMemory:
	default:
		return fmt.Errorf("unknown QUEUE_BACKEND %q", c.QueueBackend)
	}

	switch c.StoreBackend {
	case StoreDynamoDB, StoreSQLite:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.CacheBackend {
	case CacheRedis, CacheMemory:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}

	return nil
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
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
