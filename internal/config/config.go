package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	APIKey      string // API key for authentication

	// TrustedProxies lists proxy IPs whose X-Forwarded-For header is honoured
	TrustedProxies []string

	// Local cache database
	CachePath string

	// Remote backend
	RemoteKind    string // "http" or "postgres"
	RemoteBaseURL string
	RemoteAPIKey  string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string

	// Sync behaviour
	DrainInterval    time.Duration
	BulkSyncInterval time.Duration
	StartOnline      bool

	// Background workers
	WorkerCount     int
	WorkerQueueSize int

	// Facade read cache
	EntityCacheSize int
	EntityCacheTTL  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:   getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		APIKey:      getEnv("API_KEY", ""),

		CachePath: getEnv("CACHE_PATH", DefaultCachePath),

		RemoteKind:    getEnv("REMOTE_KIND", DefaultRemoteKind),
		RemoteBaseURL: getEnv("REMOTE_BASE_URL", DefaultRemoteBaseURL),
		RemoteAPIKey:  getEnv("REMOTE_API_KEY", ""),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "tradepost"),

		DrainInterval:    getEnvAsDuration("DRAIN_INTERVAL", DefaultDrainInterval),
		BulkSyncInterval: getEnvAsDuration("BULK_SYNC_INTERVAL", DefaultBulkSyncInterval),
		StartOnline:      getEnvAsBool("START_ONLINE", true),

		WorkerCount:     getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize: getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),

		EntityCacheSize: getEnvAsInt("ENTITY_CACHE_SIZE", DefaultEntityCacheSize),
		EntityCacheTTL:  getEnvAsDuration("ENTITY_CACHE_TTL", DefaultEntityCacheTTL),
	}

	cfg.Port = getEnvAsInt("PORT", DefaultPort)
	cfg.TrustedProxies = getEnvAsSlice("TRUSTED_PROXIES")

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if cfg.RemoteKind != RemoteKindHTTP && cfg.RemoteKind != RemoteKindPostgres {
		return nil, fmt.Errorf("invalid REMOTE_KIND value: %s", cfg.RemoteKind)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves a boolean environment variable or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice retrieves a comma-separated environment variable as a slice
func getEnvAsSlice(key string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return nil
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

// getEnvAsDuration retrieves a duration environment variable or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
