package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
)

// Machine codes carried by APIError.
const (
	CodeUnknown       = "unknown"
	CodeNoEntry       = "no_entry"
	CodeChallengeOver = "challenge_over"
	CodeAlreadyOut    = "already_out"
	CodeInvalidDay    = "invalid_day"
	CodeDayHasEntry   = "day_has_entry"
	CodeBusy          = "busy"
)

// Default messages for failures without a usable body.
const (
	MsgFetchFailed = "Failed to fetch data."
	MsgUnknown     = "An unknown error occurred."
)

// APIError is a user-visible failure with a message and a short machine code.
// Remote failures carry the HTTP status; locally rejected actions have Status 0.
type APIError struct {
	Message string
	Code    string
	Status  int
	Details any
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Unwrap lets errors.Is match sentinels by HTTP status.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

// NewAPIError creates a locally raised APIError.
func NewAPIError(message, code string) *APIError {
	return &APIError{Message: message, Code: code}
}

// AsAPIError returns err as an APIError, converting anything else into the
// generic unknown error.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Message: MsgUnknown, Code: CodeUnknown, Details: err.Error()}
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
