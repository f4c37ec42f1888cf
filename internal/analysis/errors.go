package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the kind of service failure
type ErrorType string

const (
	// ErrTypeNetwork indicates the service could not be reached
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeStatus indicates the service answered with a non-2xx status
	ErrTypeStatus ErrorType = "status"

	// ErrTypeDecode indicates the response body could not be parsed
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeInternal indicates the request could not be built
	ErrTypeInternal ErrorType = "internal"
)

// ServiceError represents any failure talking to the analysis service
type ServiceError struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message provides a diagnostic description
	Message string `json:"message"`

	// StatusCode for non-2xx responses
	StatusCode int `json:"status_code,omitempty"`

	// Cause is the underlying error
	Cause error `json:"-"`

	// Details provides additional context such as a body excerpt
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is matches another ServiceError of the same type
func (e *ServiceError) Is(target error) bool {
	if se, ok := target.(*ServiceError); ok {
		return e.Type == se.Type
	}
	return false
}

// ValidationError represents input rejected before any request is made
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ConfigurationError represents an invalid client configuration
type ConfigurationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error for field '%s': %s", e.Field, e.Message)
}

// NewServiceError creates a service error
func NewServiceError(errType ErrorType, message string) *ServiceError {
	return &ServiceError{
		Type:    errType,
		Message: message,
	}
}

// NewServiceErrorWithCause creates a service error with an underlying cause
func NewServiceErrorWithCause(errType ErrorType, message string, cause error) *ServiceError {
	return &ServiceError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewStatusError creates a service error for a non-2xx response
func NewStatusError(statusCode int, body string) *ServiceError {
	err := &ServiceError{
		Type:       ErrTypeStatus,
		Message:    fmt.Sprintf("request failed with status %d", statusCode),
		StatusCode: statusCode,
	}
	if body != "" {
		err.Details = map[string]any{"body": body}
	}
	return err
}

// NewValidationError creates a validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewConfigurationError creates a configuration error
func NewConfigurationError(field, message string) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsServiceError checks if an error is a service error
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// IsConfigurationError checks if an error is a configuration error
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// StatusCode returns the HTTP status carried by a service error, or 0
func StatusCode(err error) int {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
