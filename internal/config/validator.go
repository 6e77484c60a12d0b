package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/types"
)

var validate = validator.New()

// Validate checks the configuration and returns a detailed error message
// naming every violated field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "configuration is nil")
	}

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return types.WrapError(types.CONFIG_VALIDATION_FAILED, "validation error", err)
	}

	var messages []string
	for _, e := range validationErrs {
		messages = append(messages, formatValidationError(e))
	}

	return types.NewError(types.CONFIG_VALIDATION_FAILED,
		fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(messages, "\n  - ")))
}

// formatValidationError converts a field error into a readable message.
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Namespace())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Namespace(), e.Param())
	default:
		return fmt.Sprintf("%s failed validation rule %q", e.Namespace(), e.Tag())
	}
}
