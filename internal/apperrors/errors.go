// Package apperrors defines the typed errors shared by the service layer and
// the HTTP transport. Services return *AppError values for every expected
// failure so handlers can map them to response codes without inspecting
// storage- or crypto-level errors.
package apperrors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error for transport-level mapping.
type ErrorType string

const (
	// TypeValidation indicates a malformed or missing input field.
	TypeValidation ErrorType = "VALIDATION"

	// TypeConflict indicates a uniqueness violation against existing data.
	TypeConflict ErrorType = "CONFLICT"

	// TypeAuth indicates missing or invalid credentials.
	TypeAuth ErrorType = "AUTH"

	// TypeForbidden indicates the policy engine denied the action.
	TypeForbidden ErrorType = "FORBIDDEN"

	// TypeNotFound indicates the requested record does not exist.
	TypeNotFound ErrorType = "NOT_FOUND"

	// TypeInternal indicates an unexpected failure in a collaborator.
	TypeInternal ErrorType = "INTERNAL"
)

// AppError is an application error with enough structure for the transport
// layer to pick a status code and for callers to branch on the failure kind.
type AppError struct {
	Type    ErrorType
	Message string

	// Field names the offending input field on validation errors.
	Field string

	// Reason carries the policy denial reason on forbidden errors.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error for a single input field.
func NewValidationError(field, message string) *AppError {
	return &AppError{Type: TypeValidation, Message: message, Field: field}
}

// NewConflictError creates an error for a uniqueness violation.
func NewConflictError(message string) *AppError {
	return &AppError{Type: TypeConflict, Message: message}
}

// NewAuthError creates an error for failed authentication.
func NewAuthError(message string) *AppError {
	return &AppError{Type: TypeAuth, Message: message}
}

// NewForbiddenError creates an error for a policy denial. The reason is the
// machine-distinguishable denial code produced by the policy engine.
func NewForbiddenError(reason, message string) *AppError {
	return &AppError{Type: TypeForbidden, Message: message, Reason: reason}
}

// NewNotFoundError creates an error for a missing record.
func NewNotFoundError(message string) *AppError {
	return &AppError{Type: TypeNotFound, Message: message}
}

// NewInternalError wraps an unexpected failure from a collaborator.
func NewInternalError(message string, err error) *AppError {
	return &AppError{Type: TypeInternal, Message: message, Err: err}
}

// From extracts the AppError from err, or nil when err is not one.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	appErr := From(err)
	return appErr != nil && appErr.Type == t
}
