package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Configuration Errors (CONFIG_*)
	ErrorCodeConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Credential Errors (CREDENTIAL_*)
	ErrorCodeCredentialInvalid ErrorCode = "CREDENTIAL_INVALID"

	// Validation Errors (VALIDATION_*)
	ErrorCodeValidationAmountInvalid ErrorCode = "VALIDATION_AMOUNT_INVALID"
	ErrorCodeValidationMissingField  ErrorCode = "VALIDATION_MISSING_FIELD"

	// Payment Gateway Errors (GATEWAY_*)
	ErrorCodeGatewayProtocolMismatch ErrorCode = "GATEWAY_PROTOCOL_MISMATCH"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code, so sentinel values
// below can be used with errors.Is after WithDetail or WrapError.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// WithDetail returns a copy of the error with an extra detail field
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	details := make(map[string]interface{}, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &DomainError{
		Err:     e.Err,
		Details: details,
		Code:    e.Code,
		Message: e.Message,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// IsConfigError checks if an error was raised while constructing the adapter
func IsConfigError(err error) bool {
	return GetErrorCode(err) == ErrorCodeConfigInvalid
}

// IsCredentialError checks if an error rejects the supplied funding source
func IsCredentialError(err error) bool {
	return GetErrorCode(err) == ErrorCodeCredentialInvalid
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeValidationAmountInvalid ||
		code == ErrorCodeValidationMissingField
}

var (
	ErrLoginRequired     = NewDomainError(ErrorCodeConfigInvalid, "login is required")
	ErrTransportRequired = NewDomainError(ErrorCodeConfigInvalid, "transport is required")

	ErrInvalidCredential = NewDomainError(ErrorCodeCredentialInvalid, "unsupported funding source provided")

	ErrValidationAmountInvalid = NewDomainError(ErrorCodeValidationAmountInvalid, "invalid amount")
	ErrValidationMissingField  = NewDomainError(ErrorCodeValidationMissingField, "required field missing")

	// ErrProtocolMismatch is never returned by the gateway; it tags log entries
	// for replies that did not carry the expected fields.
	ErrProtocolMismatch = NewDomainError(ErrorCodeGatewayProtocolMismatch, "unexpected gateway response")
)
