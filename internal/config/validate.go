package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/azuyamat/mia/internal/logging"
	"github.com/azuyamat/mia/internal/naming"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: %s; got %q", strings.Join(logging.LevelNames(), ", "), cfg.LogLevel),
		})
	}

	if strings.TrimSpace(cfg.Naming) == "" {
		errs = append(errs, ValidationError{
			Field:   "naming",
			Message: "must not be empty",
		})
	} else if err := naming.Validate(cfg.Naming); err != nil {
		errs = append(errs, ValidationError{
			Field:   "naming",
			Message: err.Error(),
		})
	}

	errs = append(errs, validateList("blacklisted_file_names", cfg.BlacklistedFileNames)...)
	errs = append(errs, validateList("blacklisted_folder_names", cfg.BlacklistedFolderNames)...)
	errs = append(errs, validateList("blacklisted_file_extensions", cfg.BlacklistedFileExtensions)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validateList rejects blank entries and entries containing path separators.
func validateList(field string, values []string) ValidationErrors {
	var errs ValidationErrors
	for i, value := range values {
		switch {
		case strings.TrimSpace(value) == "":
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "must not be empty",
			})
		case strings.ContainsAny(value, `/\`):
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("must be a name, not a path; got %q", value),
			})
		}
	}
	return errs
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
