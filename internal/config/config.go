package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // Lambda images ship without a zoneinfo database

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"fitcoach-api/internal/models"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `validate:"required"`
	Port        string `validate:"required"`
	OpenAI      OpenAIConfig
	Summary     SummaryConfig
	Log         LogConfig
}

// OpenAIConfig holds settings for the upstream completion API
type OpenAIConfig struct {
	APIKey  string        // Empty means unconfigured; reported per request
	BaseURL string        `validate:"required,url"`
	Model   string        `validate:"required"`
	Timeout time.Duration `validate:"gt=0"`
}

// SummaryConfig holds settings for the workout report
type SummaryConfig struct {
	Timezone string `validate:"required"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `validate:"required"`
	Format string `validate:"required,oneof=text json"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	v.SetDefault("OPENAI_MODEL", models.DefaultCompletionModel)
	v.SetDefault("OPENAI_TIMEOUT", "30s")
	v.SetDefault("SUMMARY_TIMEZONE", "UTC")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		OpenAI: OpenAIConfig{
			APIKey:  v.GetString("OPENAI_API_KEY"),
			BaseURL: v.GetString("OPENAI_BASE_URL"),
			Model:   v.GetString("OPENAI_MODEL"),
			Timeout: v.GetDuration("OPENAI_TIMEOUT"),
		},
		Summary: SummaryConfig{
			Timezone: v.GetString("SUMMARY_TIMEZONE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks required settings. The OpenAI key is deliberately not
// required here; its absence is reported by the chat endpoint.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := time.LoadLocation(c.Summary.Timezone); err != nil {
		return fmt.Errorf("invalid SUMMARY_TIMEZONE %q: %w", c.Summary.Timezone, err)
	}

	return nil
}

// Location returns the time zone used to render session dates
func (c *SummaryConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
