package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrNotAuthenticated   = errors.New("not authorized, no token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// College errors
var (
	ErrCollegeNotFound   = errors.New("college not found")
	ErrCollegeExists     = errors.New("college already exists with that email or name")
	ErrNameAlreadyInUse  = errors.New("college name already in use")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

// Domain entity errors
var (
	ErrEventNotFound         = errors.New("event not found")
	ErrForumPostNotFound     = errors.New("forum post not found")
	ErrResourceEntryNotFound = errors.New("resource entry not found")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrFileNotFound          = errors.New("file not found on server")
	ErrNoFileUploaded        = errors.New("no file uploaded")
)

// Password reset errors
var (
	// ErrInvalidResetToken deliberately covers absent, mismatched and expired
	// tokens so callers cannot tell which case occurred.
	ErrInvalidResetToken = errors.New("invalid or expired password reset token")
	ErrEmailDelivery     = errors.New("error sending password reset email")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewValidationError creates a validation failure with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewForbiddenError creates a permission denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}
