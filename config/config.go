package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string
	Domain      string
	CORSOrigins []string

	// Storage
	StoreBackend   string
	MongoURI       string
	MongoDatabase  string
	SeedSampleData bool
	CatalogPath    string

	// Redis
	RedisAddress        string
	RedisPassword       string
	ReportLimitPrefix   string
	ReportDailyLimit    int
	FleetReservationTTL time.Duration

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	SentryDSN string
	LogLevel  string
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("GO_ENV", "development"),
		Domain:      getEnv("DOMAIN", ""),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", "memory")),
		MongoURI:       getEnv("MONGODB_URI", ""),
		MongoDatabase:  getEnv("MONGODB_DATABASE", "civicreport"),
		SeedSampleData: parseBool(getEnv("SEED_SAMPLE_DATA", "true")),
		CatalogPath:    getEnv("CATALOG_PATH", ""),

		RedisAddress:        getEnv("REDIS_ADDRESS", ""),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		ReportLimitPrefix:   getEnv("REDIS_QUEUE_FOR_REPORT_LIMIT", "report-limit"),
		ReportDailyLimit:    parseInt(getEnv("REPORT_DAILY_LIMIT", "10"), 10),
		FleetReservationTTL: parseDuration(getEnv("FLEET_RESERVATION_TTL", "72h"), 72*time.Hour),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "72h"), 72*time.Hour),

		SentryDSN: getEnv("SENTRY_DSN", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CookieDomain is empty in production so cross-origin cookies work.
func (c *Config) CookieDomain() string {
	if c.IsProduction() {
		return ""
	}
	return c.Domain
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	return err == nil && b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}
