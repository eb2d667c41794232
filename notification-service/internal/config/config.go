// Package config loads notification-service settings from the environment or
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the notification service.
type Config struct {
	AppEnv                  string `mapstructure:"APP_ENV" validate:"required,oneof=production staging development local"`
	LogLevel                string `mapstructure:"LOG_LEVEL"`
	RedisURL                string `mapstructure:"REDIS_URL" validate:"required"`
	NotificationStream      string `mapstructure:"NOTIFICATION_STREAM" validate:"required"`
	NotifierGroup           string `mapstructure:"NOTIFIER_GROUP" validate:"required"`
	NotifierConsumer        string `mapstructure:"NOTIFIER_CONSUMER" validate:"required"`
	NotifierBatchSize       int64  `mapstructure:"NOTIFIER_BATCH_SIZE" validate:"gt=0"`
	NotifierBlockSeconds    int    `mapstructure:"NOTIFIER_BLOCK_SECONDS" validate:"gt=0"`
	NotificationDedupeHours int    `mapstructure:"NOTIFICATION_DEDUPE_HOURS" validate:"gt=0"`
}

func (c *Config) BlockDuration() time.Duration {
	return time.Duration(c.NotifierBlockSeconds) * time.Second
}

func (c *Config) DedupeTTL() time.Duration {
	return time.Duration(c.NotificationDedupeHours) * time.Hour
}

// LoadConfig reads configuration from path/.env (if present) and environment variables.
func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("NOTIFICATION_STREAM", "notification.events")
	viper.SetDefault("NOTIFIER_GROUP", "notification-service-group")
	viper.SetDefault("NOTIFIER_CONSUMER", "notification-consumer-1")
	viper.SetDefault("NOTIFIER_BATCH_SIZE", 10)
	viper.SetDefault("NOTIFIER_BLOCK_SECONDS", 5)
	viper.SetDefault("NOTIFICATION_DEDUPE_HOURS", 72)

	viper.AutomaticEnv()

	_ = viper.BindEnv("APP_ENV")
	_ = viper.BindEnv("LOG_LEVEL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("NOTIFICATION_STREAM")
	_ = viper.BindEnv("NOTIFIER_GROUP")
	_ = viper.BindEnv("NOTIFIER_CONSUMER")
	_ = viper.BindEnv("NOTIFIER_BATCH_SIZE")
	_ = viper.BindEnv("NOTIFIER_BLOCK_SECONDS")
	_ = viper.BindEnv("NOTIFICATION_DEDUPE_HOURS")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}
