package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	Port           string
	GinMode        string
	SessionSecret  string
	AllowedOrigins string
	LogLevel       string
}

func Load() *Config {
	// Missing .env is fine; production supplies real env vars.
	_ = godotenv.Load()

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "buguser"),
		DBPassword:     getEnv("DB_PASSWORD", "bugpassword"),
		DBName:         getEnv("DB_NAME", "bug_tracking"),
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		SessionSecret:  getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5174"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
