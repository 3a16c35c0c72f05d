package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Domain validation errors
const (
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeInvalidReference     = "INVALID_REFERENCE"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeUnsupportedKind      = "UNSUPPORTED_KIND"
	ErrCodeMalformedQuote       = "MALFORMED_QUOTE"
)

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidAmountError(field, amount string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("%s must be a positive number, got %q", field, amount),
	}
}

func NewInvalidReferenceError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidReference,
		Message: fmt.Sprintf("invalid reference: %s", reason),
	}
}

func NewInvalidTransitionError(from, to RunState) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

func NewUnsupportedKindError(kind Kind) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnsupportedKind,
		Message: fmt.Sprintf("unsupported orchestration kind %q", kind),
	}
}

// NewMalformedQuoteError is raised when the provider accepted a quote request
// but returned nothing we can finalize against.
func NewMalformedQuoteError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedQuote,
		Message: "provider returned a quote without an identifier",
		Err:     err,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsValidationError reports whether err was raised while checking caller input.
func IsValidationError(err error) bool {
	return IsErrorCode(err, ErrCodeMissingRequiredField) ||
		IsErrorCode(err, ErrCodeInvalidAmount) ||
		IsErrorCode(err, ErrCodeInvalidReference) ||
		IsErrorCode(err, ErrCodeUnsupportedKind)
}
