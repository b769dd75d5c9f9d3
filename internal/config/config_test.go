package config

import (
	"os"
	"testing"
	"time"
)

var configEnvVars = []string{
	"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"DB_SSLMODE", "DB_PATH", "APP_ENV", "APP_PORT", "LOG_LEVEL", "UPLOAD_DIR",
	"UPLOAD_MAX_SIZE", "RATE_LIMIT_PER_IP", "RATE_LIMIT_WINDOW_SECONDS",
	"CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT_SECONDS",
}

// clearConfigEnv unsets every variable LoadConfig reads and restores
// them when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_PASSWORD", "test_password")
	t.Setenv("UPLOAD_DIR", "/tmp/petween-uploads")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:9000, https://petween.app ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.DBDriver != DriverPostgres {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DriverPostgres)
	}
	if cfg.DBPassword != "test_password" {
		t.Errorf("DBPassword = %q, want %q", cfg.DBPassword, "test_password")
	}
	if cfg.UploadDir != "/tmp/petween-uploads" {
		t.Errorf("UploadDir = %q, want %q", cfg.UploadDir, "/tmp/petween-uploads")
	}
	if cfg.UploadMaxSize != 5242880 {
		t.Errorf("UploadMaxSize = %d, want %d", cfg.UploadMaxSize, 5242880)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://petween.app" {
		t.Errorf("CORSAllowedOrigins = %v, want two trimmed origins", cfg.CORSAllowedOrigins)
	}
	if cfg.GetAddr() != ":8000" {
		t.Errorf("GetAddr() = %q, want %q", cfg.GetAddr(), ":8000")
	}
}

func TestLoadConfig_SQLiteNeedsNoPassword(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_PATH", "dev.db")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DBPath != "dev.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "dev.db")
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Missing DB_PASSWORD",
			envVars: map[string]string{},
		},
		{
			name: "Unknown driver",
			envVars: map[string]string{
				"DB_DRIVER":   "mysql",
				"DB_PASSWORD": "password",
			},
		},
		{
			name: "Non-positive upload size",
			envVars: map[string]string{
				"DB_PASSWORD":     "password",
				"UPLOAD_MAX_SIZE": "0",
			},
		},
		{
			name: "Non-positive rate limit",
			envVars: map[string]string{
				"DB_PASSWORD":       "password",
				"RATE_LIMIT_PER_IP": "-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			if err == nil {
				t.Error("LoadConfig() expected error, got nil")
			}
		})
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *Config
		shouldErr bool
	}{
		{
			name: "Valid production config",
			cfg: &Config{
				AppEnv:             "production",
				DBDriver:           DriverPostgres,
				DBSSLMode:          "require",
				CORSAllowedOrigins: []string{"https://petween.app"},
			},
			shouldErr: false,
		},
		{
			name: "Development mode - no validation",
			cfg: &Config{
				AppEnv:             "development",
				DBDriver:           DriverSQLite,
				DBSSLMode:          "disable",
				CORSAllowedOrigins: []string{"*"},
			},
			shouldErr: false,
		},
		{
			name: "Production without SSL",
			cfg: &Config{
				AppEnv:             "production",
				DBDriver:           DriverPostgres,
				DBSSLMode:          "disable",
				CORSAllowedOrigins: []string{"https://petween.app"},
			},
			shouldErr: true,
		},
		{
			name: "Production with sqlite",
			cfg: &Config{
				AppEnv:             "production",
				DBDriver:           DriverSQLite,
				DBSSLMode:          "require",
				CORSAllowedOrigins: []string{"https://petween.app"},
			},
			shouldErr: true,
		},
		{
			name: "Production with wildcard CORS",
			cfg: &Config{
				AppEnv:             "production",
				DBDriver:           DriverPostgres,
				DBSSLMode:          "require",
				CORSAllowedOrigins: []string{"*"},
			},
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.ValidateProductionSecurity()
			if tt.shouldErr && err == nil {
				t.Error("ValidateProductionSecurity() expected error, got nil")
			}
			if !tt.shouldErr && err != nil {
				t.Errorf("ValidateProductionSecurity() unexpected error = %v", err)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "testuser",
		DBPassword: "testpass",
		DBName:     "testdb",
		DBSSLMode:  "disable",
	}

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	dsn := cfg.GetDSN()

	if dsn != expected {
		t.Errorf("GetDSN() = %q, want %q", dsn, expected)
	}
}

func TestDurations(t *testing.T) {
	cfg := &Config{
		RateLimitWindowSeconds: 60,
		ShutdownTimeoutSeconds: 10,
	}

	if got := cfg.GetRateLimitWindow(); got != time.Minute {
		t.Errorf("GetRateLimitWindow() = %v, want %v", got, time.Minute)
	}
	if got := cfg.GetShutdownTimeout(); got != 10*time.Second {
		t.Errorf("GetShutdownTimeout() = %v, want %v", got, 10*time.Second)
	}
}
