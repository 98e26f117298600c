package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Vision    VisionConfig
	Scheduler SchedulerConfig
	Security  SecurityConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// VisionConfig holds settings for the Google Vision OCR integration.
// The API key may also be stored encrypted in the database; this value is
// the bootstrap fallback.
type VisionConfig struct {
	APIKey string
}

// SchedulerConfig holds the cron schedule for the spot price refresh.
type SchedulerConfig struct {
	PriceRefreshSpec string
}

// SecurityConfig holds keys for internal endpoints and secret storage.
type SecurityConfig struct {
	InternalAPIKey string
	FernetKey      string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/gold_pos.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Vision: VisionConfig{
			APIKey: getEnv("GOOGLE_CLOUD_VISION_API_KEY", ""),
		},
		Scheduler: SchedulerConfig{
			PriceRefreshSpec: getEnv("PRICE_REFRESH_CRON", "0 * * * *"),
		},
		Security: SecurityConfig{
			InternalAPIKey: getEnv("INTERNAL_API_KEY", ""),
			FernetKey:      getEnv("FERNET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
