package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Supabase SupabaseConfig `mapstructure:"supabase"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// MetricsConfig holds the scoring-engine tunables. The defaults are the
// shipped product values; they live here (not hard-coded in the engine) so
// product can adjust them without a code change.
type MetricsConfig struct {
	// SleepGoalHours is the nightly duration a full sleep component assumes.
	SleepGoalHours float64 `mapstructure:"sleep_goal_hours"`
	// HydrationGoalMl is the fallback daily water goal when a log row
	// carries none.
	HydrationGoalMl int `mapstructure:"hydration_goal_ml"`
	// WindowDays is how far back the analyzers look.
	WindowDays int `mapstructure:"window_days"`
	// MinCorrelationSamples gates correlation reliability.
	MinCorrelationSamples int `mapstructure:"min_correlation_samples"`
	// SnoozeHours is the default insight snooze duration.
	SnoozeHours int `mapstructure:"snooze_hours"`
	// SuggestionLimit caps the dashboard's contextual suggestions.
	SuggestionLimit int `mapstructure:"suggestion_limit"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("metrics.sleep_goal_hours", 8.0)
	v.SetDefault("metrics.hydration_goal_ml", 3000)
	v.SetDefault("metrics.window_days", 30)
	v.SetDefault("metrics.min_correlation_samples", 3)
	v.SetDefault("metrics.snooze_hours", 24)
	v.SetDefault("metrics.suggestion_limit", 3)

	// Read from environment variables
	v.SetEnvPrefix("VITALTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables for backward compatibility
	v.BindEnv("server.port", "PORT")
	v.BindEnv("supabase.url", "SUPABASE_URL")
	v.BindEnv("supabase.service_key", "SUPABASE_SERVICE_KEY")

	// Read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// It's okay if config file doesn't exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	if c.Supabase.URL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.Supabase.ServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	if c.Metrics.SleepGoalHours <= 0 {
		return fmt.Errorf("metrics.sleep_goal_hours must be positive")
	}
	if c.Metrics.WindowDays <= 0 {
		return fmt.Errorf("metrics.window_days must be positive")
	}
	return nil
}
