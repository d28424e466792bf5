package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"fieldops/database"
	"fieldops/logging"
)

// AppConfig holds application-wide system configuration.
// This is infrastructure configuration, not per-user preferences.
type AppConfig struct {
	HTTPAddr    string
	HTTPLogPath string

	// LatenessCutoffHour is the local hour ending the planned working day;
	// jobs still in progress past it count as late.
	LatenessCutoffHour int
	// Timezone the cutoff applies in (IANA name, empty means local).
	Timezone string
	// SweepSchedule is the cron expression for the background lateness
	// sweep. Empty disables the scheduled sweep.
	SweepSchedule string

	Database *database.Config
	Logging  *logging.Config
}

// LoadAppConfigFromEnv loads complete application configuration from environment variables.
func LoadAppConfigFromEnv() *AppConfig {
	return &AppConfig{
		HTTPAddr:           getEnvWithDefault("HTTP_ADDR", ":8080"),
		HTTPLogPath:        getEnvWithDefault("HTTP_LOG_PATH", ""),
		LatenessCutoffHour: getEnvIntWithDefault("LATENESS_CUTOFF_HOUR", 17),
		Timezone:           getEnvWithDefault("TIMEZONE", ""),
		SweepSchedule:      getEnvWithDefault("SWEEP_SCHEDULE", "@every 5m"),
		Database:           LoadDatabaseConfigFromEnv(),
		Logging:            LoadLoggingConfigFromEnv(),
	}
}

// Location resolves the configured timezone, falling back to time.Local.
func (c *AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadDatabaseConfigFromEnv loads database configuration from environment variables.
func LoadDatabaseConfigFromEnv() *database.Config {
	return &database.Config{
		Path:              getEnvWithDefault("DB_PATH", "./fieldops.db"),
		MaxOpenConns:      getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:      getEnvIntWithDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime:   getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime:   getEnvDurationWithDefault("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
		BusyTimeoutMs:     getEnvIntWithDefault("DB_BUSY_TIMEOUT_MS", 5000),
		EnableForeignKeys: getEnvBoolWithDefault("DB_ENABLE_FOREIGN_KEYS", true),
		EnableWAL:         getEnvBoolWithDefault("DB_ENABLE_WAL", true),
	}
}

// LoadLoggingConfigFromEnv loads logging configuration from environment variables.
func LoadLoggingConfigFromEnv() *logging.Config {
	return &logging.Config{
		Level:  getEnvWithDefault("LOG_LEVEL", "info"),
		Format: getEnvWithDefault("LOG_FORMAT", "json"),
		Output: getEnvWithDefault("LOG_OUTPUT", "stdout"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(v string, def bool) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// Helper functions for environment variable parsing.
func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return parseBool(value, defaultValue)
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
