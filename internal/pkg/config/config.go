package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Environment
	Environment string `mapstructure:"ENV"`

	// Type detection
	SampleSize          int     `mapstructure:"SAMPLE_SIZE"`
	ConfidenceThreshold float64 `mapstructure:"TYPE_CONFIDENCE_THRESHOLD"`

	// Row parsing
	TrimWhitespace bool `mapstructure:"TRIM_WHITESPACE"`
	SkipEmptyRows  bool `mapstructure:"SKIP_EMPTY_ROWS"`

	// File acquisition
	MaxFileSize int64  `mapstructure:"MAX_FILE_SIZE_MB"`
	TempDir     string `mapstructure:"TEMP_DIR"`
}

// Load loads configuration from environment variables and .env file.
// Core services never read this directly: composition code passes the
// resolved values to each constructor as explicit options.
func Load() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using environment variables only")
		}
	}

	config := &Config{}

	// Set defaults
	viper.SetDefault("ENV", "development")

	// Detection defaults
	viper.SetDefault("SAMPLE_SIZE", 100)
	viper.SetDefault("TYPE_CONFIDENCE_THRESHOLD", 0.8)

	// Parsing defaults
	viper.SetDefault("TRIM_WHITESPACE", true)
	viper.SetDefault("SKIP_EMPTY_ROWS", true)

	// File acquisition defaults
	viper.SetDefault("MAX_FILE_SIZE_MB", 100)
	viper.SetDefault("TEMP_DIR", "/tmp/uploads")

	// Bind environment variables
	viper.AutomaticEnv()

	config.Environment = viper.GetString("ENV")
	config.SampleSize = viper.GetInt("SAMPLE_SIZE")
	config.ConfidenceThreshold = viper.GetFloat64("TYPE_CONFIDENCE_THRESHOLD")
	config.TrimWhitespace = viper.GetBool("TRIM_WHITESPACE")
	config.SkipEmptyRows = viper.GetBool("SKIP_EMPTY_ROWS")
	config.MaxFileSize = viper.GetInt64("MAX_FILE_SIZE_MB")
	config.TempDir = viper.GetString("TEMP_DIR")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that loaded values are usable
func (c *Config) Validate() error {
	if c.SampleSize <= 0 {
		return fmt.Errorf("SAMPLE_SIZE must be positive, got %d", c.SampleSize)
	}
	if c.ConfidenceThreshold <= 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("TYPE_CONFIDENCE_THRESHOLD must be in (0, 1], got %f", c.ConfidenceThreshold)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must not be negative, got %d", c.MaxFileSize)
	}
	return nil
}

// MaxFileSizeBytes returns the configured size limit in bytes (0 = unlimited)
func (c *Config) MaxFileSizeBytes() int64 {
	return c.MaxFileSize * 1024 * 1024
}
