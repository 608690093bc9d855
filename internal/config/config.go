package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"artool/internal/logger"
)

// Default exclusion rule settings, matching the standard AR export.
const (
	DefaultWireFeeThreshold = "100"
	DefaultWithholdingDocs  = "3148"
	DefaultWireFeeNote      = "Remaining wire fees - excluded from AR"
	DefaultWithholdingNote  = "India Withholding Tax - excluded from AR"
)

type Config struct {
	// Exclusion rules
	WireFeeThreshold decimal.Decimal
	WithholdingDocs  []string
	WireFeeNote      string
	WithholdingNote  string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	threshold, err := decimal.NewFromString(getEnv("AR_WIRE_FEE_THRESHOLD", DefaultWireFeeThreshold))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: invalid AR_WIRE_FEE_THRESHOLD: %w", err)
	}

	config := &Config{
		WireFeeThreshold: threshold,
		WithholdingDocs:  splitList(getEnv("AR_WITHHOLDING_DOCS", DefaultWithholdingDocs)),
		WireFeeNote:      getEnv("AR_WIRE_FEE_NOTE", DefaultWireFeeNote),
		WithholdingNote:  getEnv("AR_WITHHOLDING_NOTE", DefaultWithholdingNote),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:        getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.WireFeeThreshold.IsNegative() {
		return fmt.Errorf("AR_WIRE_FEE_THRESHOLD must not be negative")
	}
	if len(c.WithholdingDocs) == 0 {
		return fmt.Errorf("AR_WITHHOLDING_DOCS must list at least one document number")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
