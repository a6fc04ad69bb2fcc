package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds environment-sourced defaults for the dials CLI. Command
// line flags override these per invocation.
type Config struct {
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Knob interaction defaults.
	ContinuousEvents     bool    `envconfig:"CONTINUOUS_EVENTS" default:"true"`
	FineSensitivity      float64 `envconfig:"FINE_SENSITIVITY" default:"0.25"`
	DirectionSensitivity float64 `envconfig:"DIRECTION_SENSITIVITY" default:"1.0"`
}

// LoadConfig loads configuration from a .env file and DIALS_* environment
// variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected outside dev checkouts)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process("dials", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}
