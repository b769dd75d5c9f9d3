package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	// Application
	AppEnv   string
	AppPort  string
	LogLevel string

	// Uploads
	UploadDir     string
	UploadMaxSize int64

	// HTTP
	RateLimitPerIP         int
	RateLimitWindowSeconds int
	CORSAllowedOrigins     []string
	ShutdownTimeoutSeconds int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBDriver:   getEnv("DB_DRIVER", DriverPostgres),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "petween"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "petween"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBPath:     getEnv("DB_PATH", "petween.db"),

		AppEnv:   getEnv("APP_ENV", "development"),
		AppPort:  getEnv("APP_PORT", "8000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		UploadMaxSize: getEnvInt64("UPLOAD_MAX_SIZE", 5242880),

		RateLimitPerIP:         getEnvInt("RATE_LIMIT_PER_IP", 100),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		CORSAllowedOrigins:     getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DBDriver)
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.UploadMaxSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_SIZE must be positive")
	}
	if c.RateLimitPerIP <= 0 || c.RateLimitWindowSeconds <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_IP and RATE_LIMIT_WINDOW_SECONDS must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBDriver != DriverPostgres {
		return fmt.Errorf("DB_DRIVER must be %q in production", DriverPostgres)
	}
	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	for _, origin := range c.CORSAllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ALLOWED_ORIGINS must list explicit origins in production")
		}
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetAddr() string {
	return ":" + c.AppPort
}

func (c *Config) GetRateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func (c *Config) GetShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
