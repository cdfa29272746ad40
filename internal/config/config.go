package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	LogLevel string

	// DevMode forces the access guard into its bypass state.
	DevMode bool
	// TrustedHosts are hostnames (exact or suffix match) treated as
	// authoring/preview contexts by the access guard.
	TrustedHosts []string

	StoreBackend string
	StorePath    string
	RedisAddr    string
	RedisDB      int

	BillingBaseURL  string
	BillingTimeout  time.Duration
	RefreshInterval time.Duration
	SubscriptionTTL time.Duration
}

const (
	StoreBackendMemory = "memory"
	StoreBackendSQLite = "sqlite"
	StoreBackendRedis  = "redis"
)

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	environment := getenv("ENVIRONMENT", "development")

	return Config{
		AppName:     getenv("APP_SERVICE", "tourbase"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: environment,
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		LogLevel: getenv("LOG_LEVEL", "info"),

		DevMode:      getenvBool("DEV_MODE", environment == "development"),
		TrustedHosts: parseHosts(getenv("TRUSTED_HOSTS", "localhost")),

		StoreBackend: normalizeBackend(getenv("STORE_BACKEND", StoreBackendSQLite)),
		StorePath:    getenv("STORE_PATH", "tourbase.db"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      int(getenvInt64("REDIS_DB", 0)),

		BillingBaseURL:  strings.TrimRight(getenv("BILLING_BASE_URL", ""), "/"),
		BillingTimeout:  getenvDuration("BILLING_TIMEOUT", 10*time.Second),
		RefreshInterval: getenvDuration("SUBSCRIPTION_REFRESH_INTERVAL", 30*time.Second),
		SubscriptionTTL: getenvDuration("SUBSCRIPTION_CACHE_TTL", 45*time.Second),
	}
}

// Module provides Config to the fx graph.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewScoringHolder),
)

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case StoreBackendMemory:
		return StoreBackendMemory
	case StoreBackendRedis:
		return StoreBackendRedis
	default:
		return StoreBackendSQLite
	}
}

func parseHosts(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
