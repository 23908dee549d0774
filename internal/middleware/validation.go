package middleware

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// BindingError turns a gin binding failure into a validation error with a
// readable, field-oriented message.
func BindingError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperrors.NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, formatValidationError(fieldErr))
	}
	return apperrors.NewValidationError(strings.Join(messages, "; "))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
