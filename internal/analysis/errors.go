package analysis

import (
	"errors"
	"fmt"
)

// Common analysis errors
var (
	// ErrInvalidConfiguration is returned when the classifier configuration
	// fails validation at startup.
	ErrInvalidConfiguration = errors.New("invalid analysis configuration")
)

// ConfigurationError describes a rejected configuration value. It is
// surfaced at construction time, never mid-run.
type ConfigurationError struct {
	Field  string
	Value  interface{}
	Reason string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for '%s': %s (value: %v)", e.Field, e.Reason, e.Value)
}

// Is implements error matching for errors.Is.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(field string, value interface{}, reason string) *ConfigurationError {
	return &ConfigurationError{
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}
