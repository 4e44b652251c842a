package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/glucotrack/glucotrack/internal/logger"
)

type Config struct {
	HTTP   HTTPConfig
	DB     DBConfig
	FHIR   FHIRConfig
	Redis  RedisConfig
	Logger LoggerConfig
}

type HTTPConfig struct {
	Port string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// FHIRConfig points at the external patient-identity service.
type FHIRConfig struct {
	BaseURL   string
	TimeoutMS int
}

// RedisConfig is optional; an empty Host disables the chart cache.
type RedisConfig struct {
	Host        string
	Port        string
	ChartTTLSec int
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func Load() (*Config, error) {
	return &Config{
		HTTP: HTTPConfig{
			Port: getEnvOrDefault("HTTP_PORT", "8080"),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "glucotrack"),
		},
		FHIR: FHIRConfig{
			BaseURL:   getEnvOrDefault("FHIR_BASE_URL", "https://hapi.fhir.org/baseR4"),
			TimeoutMS: getEnvIntOrDefault("FHIR_TIMEOUT_MS", 5000),
		},
		Redis: RedisConfig{
			Host:        os.Getenv("REDIS_HOST"),
			Port:        getEnvOrDefault("REDIS_PORT", "6379"),
			ChartTTLSec: getEnvIntOrDefault("CHART_CACHE_TTL_SEC", 30),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}, nil
}
