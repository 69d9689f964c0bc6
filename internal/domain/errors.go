package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every layer. Callers match with errors.Is.
var (
	// ErrInvalidInput marks a categorical label or numeric field outside its domain
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelUnavailable marks a model artifact that is missing or fails to load
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrPredictionFailure marks a model that raised during inference
	ErrPredictionFailure = errors.New("prediction failure")
)

// ValidationError describes a single rejected input field
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value"`
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (got %v)", e.Field, e.Message, e.Value)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) succeed
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
