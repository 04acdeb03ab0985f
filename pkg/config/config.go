package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultDatabaseURL = "postgresql://localhost/percent_quiz"
	legacyScheme       = "postgres://"
	currentScheme      = "postgresql://"
)

// Config holds application configuration
type Config struct {
	DatabaseURL     string
	Port            string
	Environment     string
	APIBasePath     string
	AllowedOrigins  string
	RunMigrations   bool
	MaxOpenConns    int
	MaxIdleConns    int
	ShutdownTimeout time.Duration
}

// New creates a new configuration instance from environment variables
func New() *Config {
	return &Config{
		DatabaseURL:     NormalizeDatabaseURL(getEnv("DATABASE_URL", defaultDatabaseURL)),
		Port:            getEnv("PORT", "5000"),
		Environment:     getEnv("ENV", "development"),
		APIBasePath:     strings.TrimRight(getEnv("API_BASE_PATH", "/api"), "/"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", ""),
		RunMigrations:   getEnv("RUN_MIGRATIONS", "true") == "true",
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ShutdownTimeout: time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// NormalizeDatabaseURL rewrites the legacy postgres:// scheme that some
// hosting providers still hand out.
func NormalizeDatabaseURL(url string) string {
	if strings.HasPrefix(url, legacyScheme) {
		return currentScheme + strings.TrimPrefix(url, legacyScheme)
	}
	return url
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetAllowedOrigins returns a slice of allowed CORS origins.
// An empty list means any origin is accepted.
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
