// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // Asia/Seoul on hosts without zoneinfo

	"go-order-pipeline/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// Config holds the service configuration.
type Config struct {
	// Server
	HTTPAddr       string        `json:"http_addr" validate:"required"`
	RequestTimeout time.Duration `json:"request_timeout" validate:"gt=0"`
	MaxUploadMB    int           `json:"max_upload_mb" validate:"gte=1,lte=1024"`

	// Storage
	DatabasePath string `json:"database_path" validate:"required"`
	OutputDir    string `json:"output_dir" validate:"required"`

	// Output names are stamped in this zone.
	Timezone string `json:"timezone" validate:"required"`
}

// Load reads the configuration from ORDER_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:       getEnv("ORDER_HTTP_ADDR", ":8080"),
		RequestTimeout: getEnvDuration("ORDER_REQUEST_TIMEOUT", 2*time.Minute),
		MaxUploadMB:    getEnvInt("ORDER_MAX_UPLOAD_MB", 32),
		DatabasePath:   getEnv("ORDER_DB_PATH", "file::memory:?cache=shared"),
		OutputDir:      getEnv("ORDER_OUTPUT_DIR", "exports"),
		Timezone:       getEnv("ORDER_TIMEZONE", "Asia/Seoul"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that the time zone exists.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid config: timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// MaxUploadBytes is the multipart body limit.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return utils.ParseDuration(os.Getenv(key), defaultValue)
}
