package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application settings, sourced from environment
// variables with an optional .env file on top.
type Config struct {
	AppPort           string
	AppEnv            string
	DatabaseDriver    string
	DatabaseDSN       string
	RabbitMQURL       string
	RedisURL          string
	CacheTTL          time.Duration
	SessionExpiration time.Duration
}

// Load reads the configuration. RABBITMQ_URL and REDIS_URL are
// optional; when empty the app runs without events or caching.
func Load() *Config {
	_ = godotenv.Load() // a missing .env file is fine

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "etalase.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CACHE_TTL", "15m")
	viper.SetDefault("SESSION_EXPIRATION", "24h")
	viper.AutomaticEnv()

	return &Config{
		AppPort:           viper.GetString("APP_PORT"),
		AppEnv:            viper.GetString("APP_ENV"),
		DatabaseDriver:    viper.GetString("DATABASE_DRIVER"),
		DatabaseDSN:       viper.GetString("DATABASE_DSN"),
		RabbitMQURL:       viper.GetString("RABBITMQ_URL"),
		RedisURL:          viper.GetString("REDIS_URL"),
		CacheTTL:          viper.GetDuration("CACHE_TTL"),
		SessionExpiration: viper.GetDuration("SESSION_EXPIRATION"),
	}
}
