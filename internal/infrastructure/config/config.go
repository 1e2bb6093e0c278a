// Package config loads service settings from the environment and an optional .env file
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port            string        `mapstructure:"PORT" validate:"required,numeric"`
	NBPBaseURL      string        `mapstructure:"NBP_BASE_URL" validate:"required,url"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT" validate:"gt=0"`
	LookbackDays    int           `mapstructure:"LOOKBACK_DAYS" validate:"min=1,max=62"`
	LogLevel        string        `mapstructure:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR FATAL"`
	LogFile         string        `mapstructure:"LOG_FILE"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

var defaults = map[string]interface{}{
	"PORT":             "5000",
	"NBP_BASE_URL":     "https://api.nbp.pl/api/exchangerates",
	"UPSTREAM_TIMEOUT": "10s",
	"LOOKBACK_DAYS":    7,
	"LOG_LEVEL":        "INFO",
	"LOG_FILE":         "",
	"SHUTDOWN_TIMEOUT": "15s",
}

// Load reads configuration from environment variables, falling back to a
// .env file in the working directory and then to defaults.
func Load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("PORT"),
		NBPBaseURL:      strings.TrimRight(v.GetString("NBP_BASE_URL"), "/"),
		UpstreamTimeout: v.GetDuration("UPSTREAM_TIMEOUT"),
		LookbackDays:    v.GetInt("LOOKBACK_DAYS"),
		LogLevel:        strings.ToUpper(v.GetString("LOG_LEVEL")),
		LogFile:         v.GetString("LOG_FILE"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}
