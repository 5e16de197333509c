package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "goal.min_length")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateSession()...)
	errors = append(errors, c.validateGoal()...)
	errors = append(errors, c.validateDashboard()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

func (c *Config) validateSession() []ValidationError {
	var errors []ValidationError

	if c.Session.NameMaxLength < 1 {
		errors = append(errors, ValidationError{
			Field:   "session.name_max_length",
			Value:   c.Session.NameMaxLength,
			Message: "must be at least 1",
		})
	}
	if c.Session.NameMaxLength > 255 {
		errors = append(errors, ValidationError{
			Field:   "session.name_max_length",
			Value:   c.Session.NameMaxLength,
			Message: "must not exceed 255 (filesystem name limit)",
		})
	}

	return errors
}

func (c *Config) validateGoal() []ValidationError {
	var errors []ValidationError

	if c.Goal.MinLength < 1 {
		errors = append(errors, ValidationError{
			Field:   "goal.min_length",
			Value:   c.Goal.MinLength,
			Message: "must be at least 1",
		})
	}
	if c.Goal.MaxLength < c.Goal.MinLength {
		errors = append(errors, ValidationError{
			Field:   "goal.max_length",
			Value:   c.Goal.MaxLength,
			Message: "must be greater than or equal to goal.min_length",
		})
	}
	if c.Goal.HistoryRetention < 1 {
		errors = append(errors, ValidationError{
			Field:   "goal.history_retention",
			Value:   c.Goal.HistoryRetention,
			Message: "must be at least 1",
		})
	}
	if c.Goal.WordSampleSize < 0 {
		errors = append(errors, ValidationError{
			Field:   "goal.word_sample_size",
			Value:   c.Goal.WordSampleSize,
			Message: "must not be negative",
		})
	}

	return errors
}

func (c *Config) validateDashboard() []ValidationError {
	var errors []ValidationError

	if c.Dashboard.PollIntervalMs < 100 {
		errors = append(errors, ValidationError{
			Field:   "dashboard.poll_interval_ms",
			Value:   c.Dashboard.PollIntervalMs,
			Message: "must be at least 100",
		})
	}

	return errors
}

func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
